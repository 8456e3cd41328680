package vmlog

import (
	"bytes"
	"strings"
	"testing"
)

func TestInfofWritesMessage(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Infof("loaded %s", "game.ch8")
	if !strings.Contains(buf.String(), "loaded game.ch8") {
		t.Errorf("output %q missing formatted message", buf.String())
	}
}

func TestErrorfPrefixesError(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Errorf("could not open %s", "rom.ch8")
	if !strings.Contains(buf.String(), "error: could not open rom.ch8") {
		t.Errorf("output %q missing error prefix", buf.String())
	}
}
