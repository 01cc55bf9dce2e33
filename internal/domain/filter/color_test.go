package filter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{in: "#ff0000", want: RGB(255, 0, 0)},
		{in: "00ff00", want: RGB(0, 255, 0)},
		{in: "#0000ff80", want: RGBA(0, 0, 255, 128)},
		{in: " #FFFFFF ", want: RGB(255, 255, 255)},
		{in: "#fff", wantErr: true},
		{in: "#gg0000", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHexColor(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestColorHex(t *testing.T) {
	require.Equal(t, "#ff0000", RGB(255, 0, 0).Hex())
	require.Equal(t, "#0000ff80", RGBA(0, 0, 255, 128).String())
}

func TestColorKindKeywords(t *testing.T) {
	for _, kind := range ColorKinds {
		resolved, ok := ColorKindForKeyword(kind.Keyword())
		require.True(t, ok)
		require.Equal(t, kind, resolved)
	}

	kind, ok := ColorKindForKeyword("setbordercolor")
	require.True(t, ok)
	require.Equal(t, BorderColor, kind)

	_, ok = ColorKindForKeyword("SetFontSize")
	require.False(t, ok)
}
