package chatops

// Choice is one selectable entry in a disambiguation menu: the label shown
// to the user and the value substituted into the re-invocation.
type Choice struct {
	Label string
	Value string
}

// ImageElement is an inline image reference used in response headers.
type ImageElement struct {
	URL     string
	AltText string
}

// ResponseHeader decorates a successful panel response before the image is
// delivered.
type ResponseHeader struct {
	Command     string
	Subcommand  string
	Args        []Choice
	Description string
	Logo        ImageElement
}

// Dispatcher abstracts the surrounding chat framework. The worker only ever
// talks to this interface; platform specifics live behind it.
type Dispatcher interface {
	// SendMarkdown delivers a markdown message, optionally visible only to
	// the invoking user.
	SendMarkdown(text string, ephemeral bool) error
	// SendBusyIndicator shows a typing/working indicator.
	SendBusyIndicator() error
	// SendError delivers a user-visible error message.
	SendError(text string) error
	// SendImage delivers a local image file as an attachment.
	SendImage(path string) error
	// SendHeader delivers the command response header block.
	SendHeader(header ResponseHeader) error
	// PromptFromMenu shows a selection menu. The chat framework re-invokes
	// the command identified by actionID with the chosen value substituted.
	PromptFromMenu(actionID, helperText string, choices []Choice) error
	// UserMention returns the mention string for the invoking user.
	UserMention() string
	// StaticURL resolves a static asset path to a fetchable URL.
	StaticURL(path string) string
}
