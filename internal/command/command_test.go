package command

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Command
	}{
		{"info", "gii=(/home/u/Pictures/cat.png)", Command{Kind: KindInfo, Arg: "/home/u/Pictures/cat.png"}},
		{"info windows path", `gii=(C:\Users\u\Downloads\photo 1.jpeg)`, Command{Kind: KindInfo, Arg: `C:\Users\u\Downloads\photo 1.jpeg`}},
		{"exif", "fem=(shot.jpg)", Command{Kind: KindExif, Arg: "shot.jpg"}},
		{"scan", "is=(png)", Command{Kind: KindScan, Arg: "png"}},
		{"trimmed", "  is=(gif)\n", Command{Kind: KindScan, Arg: "gif"}},
		{"help", "help", Command{Kind: KindHelp}},
		{"exit", "exit\r\n", Command{Kind: KindExit}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseUnknown(t *testing.T) {
	tests := []struct {
		input    string
		reported string
	}{
		{"", EmptyInput},
		{"   ", EmptyInput},
		{"is=()", "is=()"},
		{"is=(a(b))", "is=(a(b))"},
		{"gii=(x", "gii=(x"},
		{"GII=(x)", "GII=(x)"},
		{"helpme", "helpme"},
		{"is=(png) extra", "is=(png) extra"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			_, err := Parse(tt.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnknownCommand))

			var unknown *UnknownCommandError
			require.ErrorAs(t, err, &unknown)
			assert.Equal(t, tt.reported, unknown.Input)
		})
	}
}

func TestKindTitle(t *testing.T) {
	assert.Equal(t, "Get Image Info", KindInfo.Title())
	assert.Equal(t, "Get Image Exif Metadata", KindExif.Title())
	assert.Equal(t, "Get All Images Sizes And Info", KindScan.Title())
	assert.Empty(t, KindHelp.Title())
	assert.Equal(t, "is", KindScan.String())
}
