// Package config provides configuration loading, merging, and validation
// facilities for the application.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources only fill fields the earlier ones left empty):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//  4. Built-in defaults
//
// The main entry point is [GetConfig]. Notion credentials are deliberately
// NOT validated at load time: local capture must keep working on a machine
// where the integration has not been configured yet. The sync engine calls
// [Notion.Validate] as its pre-flight check instead.
package config
