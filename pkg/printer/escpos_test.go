package printer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument(t *testing.T) {
	t.Run("starts with the init command", func(t *testing.T) {
		b := NewDocument(DefaultReceiptWidth).Bytes()
		require.GreaterOrEqual(t, len(b), 2)
		assert.Equal(t, []byte{ESC, '@'}, b[:2])
	})

	t.Run("zero width falls back to the receipt default", func(t *testing.T) {
		d := NewDocument(0)
		line := string(d.Separator('-').Bytes())
		assert.Contains(t, line, strings.Repeat("-", DefaultReceiptWidth))
	})

	t.Run("key value pads to the full width", func(t *testing.T) {
		d := NewDocument(DefaultReceiptWidth)
		d.Reset()
		d.KeyValue("TOTAL", "25,000.00")

		out := string(d.Bytes()[2:]) // skip init bytes
		out = strings.TrimSuffix(out, "\n")
		assert.Len(t, out, DefaultReceiptWidth)
		assert.True(t, strings.HasPrefix(out, "TOTAL"))
		assert.True(t, strings.HasSuffix(out, "25,000.00"))
	})

	t.Run("item line keeps qty prefix and total aligned", func(t *testing.T) {
		d := NewDocument(DefaultReceiptWidth)
		d.Reset()
		d.ItemLine(4, "Cable", "2,000.00")

		out := strings.TrimSuffix(string(d.Bytes()[2:]), "\n")
		assert.Len(t, out, DefaultReceiptWidth)
		assert.True(t, strings.HasPrefix(out, "4x Cable"))
		assert.True(t, strings.HasSuffix(out, "2,000.00"))
	})

	t.Run("overlong lines keep one space between columns", func(t *testing.T) {
		d := NewDocument(10)
		d.Reset()
		d.KeyValue("A VERY LONG KEY", "9,999.99")

		out := strings.TrimSuffix(string(d.Bytes()[2:]), "\n")
		assert.Equal(t, "A VERY LONG KEY 9,999.99", out)
	})

	t.Run("partial cut terminates the job", func(t *testing.T) {
		b := NewDocument(DefaultReceiptWidth).PartialCut().Bytes()
		assert.Equal(t, []byte{GS, 'V', 0x01}, b[len(b)-3:])
	})

	t.Run("reset clears prior content", func(t *testing.T) {
		d := NewDocument(DefaultReceiptWidth)
		d.Text("scrap")
		d.Reset()
		assert.Equal(t, []byte{ESC, '@'}, d.Bytes())
	})
}

func TestNewPrinterFromConfig(t *testing.T) {
	t.Run("none yields the null printer", func(t *testing.T) {
		p, err := NewPrinterFromConfig("none", "", "")
		require.NoError(t, err)
		assert.NoError(t, p.Print([]byte("anything")))
		assert.False(t, p.IsConnected())
	})

	t.Run("usb requires a device path", func(t *testing.T) {
		_, err := NewPrinterFromConfig("usb", "", "")
		require.Error(t, err)
	})

	t.Run("network requires an address", func(t *testing.T) {
		_, err := NewPrinterFromConfig("network", "", "")
		require.Error(t, err)
	})

	t.Run("unknown type fails", func(t *testing.T) {
		_, err := NewPrinterFromConfig("carrier-pigeon", "", "")
		require.Error(t, err)
	})
}
