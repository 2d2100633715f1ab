// Package flow reads chatflow graphs and answers questions about them
// against the plugin registry, such as which credentials each node in a
// flow needs before it can run.
package flow
