package planner

// OpKind is the kind of a planned operation.
type OpKind string

const (
	// OpMove moves a file to its year/category destination.
	OpMove OpKind = "move"

	// OpSkip leaves a file in place (ignored, archived, uncategorized
	// or already organized).
	OpSkip OpKind = "skip"

	// OpDeleteDuplicate removes a file whose content already reaches
	// the destination through the kept duplicate.
	OpDeleteDuplicate OpKind = "delete_duplicate"
)

// PlannedOperation is one proposed file action. Produced by the
// planner, consumed unchanged by the executor and the renderers.
type PlannedOperation struct {
	// Kind is the operation kind
	Kind OpKind `json:"kind"`

	// Source is the absolute path of the file as found
	Source string `json:"source"`

	// Dest is the destination path (moves), the kept file's
	// destination (duplicate deletions), or empty (skips)
	Dest string `json:"dest,omitempty"`

	// Reason explains the decision in user-facing terms
	Reason string `json:"reason"`

	// Year and Category are set for moves and duplicate deletions
	Year     int    `json:"year,omitempty"`
	Category string `json:"category,omitempty"`

	// Size is the file size in bytes
	Size int64 `json:"size,omitempty"`
}

// Failure records a file the planner could not process. The walk
// continues past failures; they are surfaced, never swallowed.
type Failure struct {
	// Path is the file that failed
	Path string `json:"path"`

	// Reason is the underlying error in user-facing terms
	Reason string `json:"reason"`
}

// Plan is the ordered result of planning one directory.
type Plan struct {
	// Root is the absolute path of the planned directory
	Root string `json:"root"`

	// Operations are the planned operations in walk order
	Operations []PlannedOperation `json:"operations"`

	// Failures are files skipped due to errors
	Failures []Failure `json:"failures,omitempty"`
}

// Moves returns the number of planned moves.
func (p *Plan) Moves() int { return p.count(OpMove) }

// Skips returns the number of planned skips.
func (p *Plan) Skips() int { return p.count(OpSkip) }

// Deletes returns the number of planned duplicate deletions.
func (p *Plan) Deletes() int { return p.count(OpDeleteDuplicate) }

func (p *Plan) count(kind OpKind) int {
	n := 0
	for _, op := range p.Operations {
		if op.Kind == kind {
			n++
		}
	}
	return n
}

// MovedBytes returns the total size of all planned moves.
func (p *Plan) MovedBytes() int64 {
	var total int64
	for _, op := range p.Operations {
		if op.Kind == OpMove {
			total += op.Size
		}
	}
	return total
}
