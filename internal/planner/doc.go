// Package planner turns a directory tree and a rule set into an
// ordered list of planned operations.
//
// Planning is pure: the planner walks, classifies, groups duplicates
// and resolves collisions, but never touches a file. Preview, test and
// execute modes all consume the same Plan value, so what a dry run
// prints is exactly what a real run does.
//
// The walk order is lexical (filepath.WalkDir) and the emitted
// operation order follows the walk, keeping plans deterministic across
// runs and platforms.
package planner
