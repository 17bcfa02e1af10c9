package commits

import "strings"

const (
	commitDelimiterConstant    = "$"
	lineSeparatorConstant      = "\n"
	shaKeyPrefixConstant       = "SHA:"
	messageKeyPrefixConstant   = "Message:"
	authorKeyPrefixConstant    = "Author:"
	committerKeyPrefixConstant = "Committer:"
)

// ParseCommitLog converts the delimited commit blob returned by the backend into commit records.
// Chunks are separated by "$"; each chunk holds "Key: value" lines. Records without a SHA are dropped.
// The result preserves chunk order and is never nil.
func ParseCommitLog(rawCommitLog string) []CommitRecord {
	records := make([]CommitRecord, 0)
	for _, chunk := range strings.Split(rawCommitLog, commitDelimiterConstant) {
		trimmedChunk := strings.TrimSpace(chunk)
		if len(trimmedChunk) == 0 {
			continue
		}

		record := parseCommitChunk(trimmedChunk)
		if len(record.SHA) == 0 {
			continue
		}
		records = append(records, record)
	}
	return records
}

// parseCommitChunk tests every line against each key prefix independently; a later line for the same key wins.
func parseCommitChunk(chunk string) CommitRecord {
	var record CommitRecord
	for _, line := range strings.Split(chunk, lineSeparatorConstant) {
		if value, matched := extractKeyValue(line, shaKeyPrefixConstant); matched {
			record.SHA = value
		}
		if value, matched := extractKeyValue(line, messageKeyPrefixConstant); matched {
			record.Message = value
		}
		if value, matched := extractKeyValue(line, authorKeyPrefixConstant); matched {
			record.Author = value
		}
		if value, matched := extractKeyValue(line, committerKeyPrefixConstant); matched {
			record.Committer = value
		}
	}
	return record
}

func extractKeyValue(line string, keyPrefix string) (string, bool) {
	remainder, matched := strings.CutPrefix(line, keyPrefix)
	if !matched {
		return "", false
	}
	return strings.TrimSpace(remainder), true
}
