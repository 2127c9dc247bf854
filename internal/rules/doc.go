// Package rules parses the flat text rule file that drives file
// organization.
//
// A rule file is a sequence of `key: value` lines. Reserved keys
// (ignore, ignore_path, archive_dir) declare ignore and archive rules;
// every other key declares a category and the comma-separated list of
// file extensions it owns. The parsed result is an immutable RuleSet
// built once per run and shared by the classifier and planner.
package rules
