package commits

const (
	shortSHALengthConstant            = 7
	missingMessagePlaceholderConstant = "No message"
)

// CommitRecord describes one commit extracted from the backend commit history.
type CommitRecord struct {
	SHA       string `json:"sha" yaml:"sha" toml:"sha"`
	Message   string `json:"message,omitempty" yaml:"message,omitempty" toml:"message,omitempty"`
	Author    string `json:"author,omitempty" yaml:"author,omitempty" toml:"author,omitempty"`
	Committer string `json:"committer,omitempty" yaml:"committer,omitempty" toml:"committer,omitempty"`
}

// ShortSHA returns the abbreviated commit identifier shown in listings.
func (record CommitRecord) ShortSHA() string {
	if len(record.SHA) <= shortSHALengthConstant {
		return record.SHA
	}
	return record.SHA[:shortSHALengthConstant]
}

// DisplayMessage returns the commit message or a placeholder when the message is absent.
func (record CommitRecord) DisplayMessage() string {
	if len(record.Message) == 0 {
		return missingMessagePlaceholderConstant
	}
	return record.Message
}
