package view

import (
	"bytes"
	"fmt"
	"testing"
)

type MockView struct {
	lines int
	name  string
	out   *bytes.Buffer
}

func (mv *MockView) Render(int) int {
	if mv.out != nil {
		fmt.Fprint(mv.out, mv.name)
	}
	return mv.lines
}

func TestCompositeView_Render(t *testing.T) {
	view1 := &MockView{lines: 3}
	view2 := &MockView{lines: 5}
	view3 := &MockView{lines: 2}

	compositeView := NewCompositeView([]View{view1, view2, view3})

	totalLines := compositeView.Render(80)
	expectedLines := 10

	if totalLines != expectedLines {
		t.Errorf("expected %d lines, got %d", expectedLines, totalLines)
	}
}

func TestCompositeView_FootersRenderLast(t *testing.T) {
	var buf bytes.Buffer
	compositeView := NewCompositeView(nil)
	compositeView.AddFooter(&MockView{lines: 1, name: "footer", out: &buf})
	compositeView.AddView(&MockView{lines: 2, name: "body,", out: &buf})

	lines := compositeView.Render(80)

	if buf.String() != "body,footer" {
		t.Errorf("expected footer after body, got %q", buf.String())
	}
	if lines != 3 {
		t.Errorf("expected 3 lines, got %d", lines)
	}
}
