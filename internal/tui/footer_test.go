package tui

import (
	"strings"
	"testing"
	"time"

	"github.com/uwtype/uwtype/internal/model"
	"github.com/uwtype/uwtype/internal/session"
)

func TestRenderFooterFormats(t *testing.T) {
	t0 := time.Unix(0, 0)
	sess := session.New("abcdefghij")
	sess = sess.ApplyInput("a", t0)
	sess = sess.ApplyInput("abcde", t0.Add(6*time.Second))

	m := &Model{
		sess:    sess,
		scoring: model.DefaultScoring,
		now:     t0.Add(6 * time.Second),
		bestWPM: 88,
	}
	out := m.renderFooter()
	if out == "" {
		t.Fatalf("expected footer output")
	}
	// 5 correct prefix chars in 6s: (5/5)/(0.1min) = 10 WPM; 5/10 target
	// positions correct; halfway through the passage.
	for _, needle := range []string{"10 WPM", "50.0% acc", "00:06", "Progress 50%", "Warrior tier", "Best 88"} {
		if !strings.Contains(out, needle) {
			t.Fatalf("footer missing %q: %s", needle, out)
		}
	}
}

func TestFormatElapsed(t *testing.T) {
	cases := map[int64]string{
		0:      "00:00",
		6000:   "00:06",
		65000:  "01:05",
		615000: "10:15",
	}
	for ms, want := range cases {
		if got := formatElapsed(ms); got != want {
			t.Errorf("formatElapsed(%d) = %q, want %q", ms, got, want)
		}
	}
}
