// Package config manages user-level settings stored at ~/.nexusagent/config.yaml
// and NEXUS_* environment variables. It provides functions to load, read and
// write configuration keys, and turns them into registry options: the plugin
// directories, the community-node switch, the allow-list file and the load
// limits.
package config
