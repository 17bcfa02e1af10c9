package flags

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"
)

var testOutputFormatChoices = []string{"text", "json", "yaml", "toml"}

func TestFormatChoiceUsage(t *testing.T) {
	testCases := []struct {
		name           string
		defaultChoice  string
		choices        []string
		description    string
		expectedOutput string
	}{
		{
			name:           "DefaultFirstChoice",
			defaultChoice:  "text",
			choices:        testOutputFormatChoices,
			description:    "Output format for results.",
			expectedOutput: "`<TEXT|json|yaml|toml>` Output format for results.",
		},
		{
			name:           "DefaultLaterChoice",
			defaultChoice:  "never",
			choices:        []string{"auto", "always", "never"},
			description:    "Colourize text output.",
			expectedOutput: "`<auto|always|NEVER>` Colourize text output.",
		},
		{
			name:           "EmptyDescription",
			defaultChoice:  "console",
			choices:        []string{"structured", "console"},
			description:    "  ",
			expectedOutput: "`<structured|CONSOLE>`",
		},
		{
			name:           "DuplicatesAndWhitespaceIgnored",
			defaultChoice:  "json",
			choices:        []string{" json ", "JSON", "text", ""},
			description:    "Pick a format.",
			expectedOutput: "`<JSON|text>` Pick a format.",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			actual := FormatChoiceUsage(testCase.defaultChoice, testCase.choices, testCase.description)
			require.Equal(t, testCase.expectedOutput, actual)
		})
	}
}

func TestAddChoiceFlagParsesValues(t *testing.T) {
	testCases := []struct {
		name          string
		arguments     []string
		expectedValue string
		expectError   bool
	}{
		{name: "DefaultValue", arguments: []string{}, expectedValue: "text"},
		{name: "ExplicitValue", arguments: []string{"--output-format", "yaml"}, expectedValue: "yaml"},
		{name: "UppercaseValue", arguments: []string{"--output-format", "TOML"}, expectedValue: "toml"},
		{name: "RejectedValue", arguments: []string{"--output-format", "xml"}, expectedValue: "text", expectError: true},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			command := &cobra.Command{}

			var formatValue string
			AddChoiceFlag(command.Flags(), &formatValue, "output-format", "text", testOutputFormatChoices, "Output format")

			parseError := command.ParseFlags(testCase.arguments)
			if testCase.expectError {
				require.Error(t, parseError)
			} else {
				require.NoError(t, parseError)
			}
			require.Equal(t, testCase.expectedValue, formatValue)
		})
	}
}
