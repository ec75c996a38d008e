package block

// HTML attributes written by the renderer and read back by the parser.
const (
	AttrBlock = "data-block"
	AttrLevel = "data-level"
	AttrStyle = "data-style"
)

// KindSteps marks the steps card synthesized from legacy text. It has no
// editable variant; parsers treat it like any unrecognized kind.
const KindSteps Kind = "steps"
