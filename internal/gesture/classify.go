package gesture

// Label names a recognized hand gesture.
type Label string

const (
	LabelOpen      Label = "open"
	LabelClosed    Label = "closed"
	LabelPointing  Label = "pointing"
	LabelPeace     Label = "peace"
	LabelThumbsUp  Label = "thumbs-up"
	LabelRock      Label = "rock"
	LabelHangLoose Label = "hang-loose"
	LabelSpock     Label = "spock"
	LabelLShape    Label = "L-shape"
	LabelUnknown   Label = "unknown"
)

// patterns maps exact finger states to their gesture. Open and closed hands
// are decided by count before the lookup.
var patterns = map[FingerState]Label{
	{false, true, false, false, false}: LabelPointing,
	{false, true, true, false, false}:  LabelPeace,
	{true, false, false, false, false}: LabelThumbsUp,
	{true, true, false, false, true}:   LabelRock,
	{true, false, false, false, true}:  LabelHangLoose,
	{false, true, false, false, true}:  LabelSpock,
	{true, true, false, false, false}:  LabelLShape,
}

// Classify maps a finger state to a gesture label. Every state has exactly
// one label; states outside the table are LabelUnknown.
func Classify(state FingerState) Label {
	switch state.Count() {
	case NumFingers:
		return LabelOpen
	case 0:
		return LabelClosed
	}

	if label, ok := patterns[state]; ok {
		return label
	}
	return LabelUnknown
}
