// Package registry discovers node and credential plugins and builds the
// name-keyed tables the rest of the application queries. It walks the plugin
// directories, loads every manifest concurrently, filters nodes through the
// inclusion policy, resolves relative icon paths against the directory of the
// manifest that declared them, and attaches node icons to the credentials
// those nodes require.
//
// Building happens in two phases: nodes first, producing the node table and
// an icon index keyed by credential name, then credentials, which consume the
// index. The resulting *Registry is immutable.
package registry
