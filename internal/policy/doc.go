// Package policy decides which node plugins are exposed. Three checks are
// applied in order: a fixed set of excluded categories, the community gate
// for nodes that declare an author, and a hand-maintained allow-list of
// display labels.
package policy
