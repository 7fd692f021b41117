package domain

// Interaction is a transport-neutral view of a user invoking a command or submitting a modal.
type Interaction struct {
	ID          string
	AppID       string
	Token       string
	GuildID     string
	ChannelID   string
	UserID      string
	Username    string
	CommandName string
	Options     map[string]string
}

// Option returns the string value of a named command option, or "" when it was not supplied.
func (i *Interaction) Option(name string) string {
	if i.Options == nil {
		return ""
	}

	return i.Options[name]
}

type ModalSubmission struct {
	Interaction *Interaction
	CustomID    string
	Fields      map[string]string
}

type Embed struct {
	Description string
	ImageURL    string
}

type Message struct {
	Content   string
	Embeds    []Embed
	Ephemeral bool
}

// Reply is the derived response of a custom command: the embeds go into the first message, FollowUp (if
// any) is sent as plain text afterwards.
type Reply struct {
	Embeds   []Embed
	FollowUp string
}

type TextInputStyle int

const (
	TextInputShort TextInputStyle = iota + 1
	TextInputParagraph
)

type TextInput struct {
	ID          string
	Label       string
	Placeholder string
	Value       string
	Style       TextInputStyle
	Required    bool
}

type Modal struct {
	CustomID string
	Title    string
	Inputs   []TextInput
}

// Activity is the presence shown under the bot's name. Type uses the platform's activity type numbers.
type Activity struct {
	Type int
	Name string
	URL  string
}
