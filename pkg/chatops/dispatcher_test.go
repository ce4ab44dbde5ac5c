package chatops

// fakeDispatcher records every chat interaction for assertions.
type fakeDispatcher struct {
	markdowns []string
	errors    []string
	images    []string
	headers   []ResponseHeader
	prompts   []promptCall
	busyCount int
}

type promptCall struct {
	actionID   string
	helperText string
	choices    []Choice
}

func (d *fakeDispatcher) SendMarkdown(text string, _ bool) error {
	d.markdowns = append(d.markdowns, text)
	return nil
}

func (d *fakeDispatcher) SendBusyIndicator() error {
	d.busyCount++
	return nil
}

func (d *fakeDispatcher) SendError(text string) error {
	d.errors = append(d.errors, text)
	return nil
}

func (d *fakeDispatcher) SendImage(path string) error {
	d.images = append(d.images, path)
	return nil
}

func (d *fakeDispatcher) SendHeader(header ResponseHeader) error {
	d.headers = append(d.headers, header)
	return nil
}

func (d *fakeDispatcher) PromptFromMenu(actionID, helperText string, choices []Choice) error {
	d.prompts = append(d.prompts, promptCall{actionID: actionID, helperText: helperText, choices: choices})
	return nil
}

func (d *fakeDispatcher) UserMention() string {
	return "@tester"
}

func (d *fakeDispatcher) StaticURL(path string) string {
	return "https://chat.example.com/static/" + path
}
