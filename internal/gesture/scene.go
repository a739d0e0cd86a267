package gesture

// Scene messages shown for particular hand combinations.
const (
	MessagePointing = "Mito"
	MessageBothOpen = "Absolute Cinema"
)

// SceneMessage returns the banner for the labels of every hand in a frame,
// or "" when none applies. A pointing hand takes precedence over two open hands.
func SceneMessage(labels []Label) string {
	for _, l := range labels {
		if l == LabelPointing {
			return MessagePointing
		}
	}
	if len(labels) == 2 && labels[0] == LabelOpen && labels[1] == LabelOpen {
		return MessageBothOpen
	}
	return ""
}
