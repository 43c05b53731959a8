package core

import (
	"fmt"
	"testing"
)

func TestRandomColor(t *testing.T) {
	for i := 0; i < 100; i++ {
		c := RandomColor()

		var r, g, b int
		if _, err := fmt.Sscanf(c.Fill, "rgba(%d, %d, %d, 0.5)", &r, &g, &b); err != nil {
			t.Fatalf("unexpected fill format %q: %v", c.Fill, err)
		}
		for _, ch := range []int{r, g, b} {
			if ch < 56 || ch > 255 {
				t.Fatalf("channel %d out of [56, 256) in %q", ch, c.Fill)
			}
		}
		if want := fmt.Sprintf("rgba(%d, %d, %d, 1)", r, g, b); c.Border != want {
			t.Fatalf("border = %q, want %q (same channels, opaque)", c.Border, want)
		}
	}
}
