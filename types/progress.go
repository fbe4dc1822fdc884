package types

import (
	"fmt"
	"io"

	"github.com/gosuri/uilive"
)

// Progress prints one live status line per experiment
type Progress struct {
	writer  *uilive.Writer
	writers map[string]io.Writer
	lines   map[string]string
	order   []string

	longestNameLen int
}

func NewProgress(experiments []*Experiment) *Progress {
	writer := uilive.New()
	p := &Progress{
		writer:  writer,
		writers: make(map[string]io.Writer),
		lines:   make(map[string]string),
		order:   make([]string, 0, len(experiments)),
	}
	for i, e := range experiments {
		if i == 0 {
			p.writers[e.Name] = writer
		} else {
			p.writers[e.Name] = writer.Newline()
		}
		p.order = append(p.order, e.Name)
		p.lines[e.Name] = "Pending"
		if len(e.Name) > p.longestNameLen {
			p.longestNameLen = len(e.Name)
		}
	}
	writer.Start()
	return p
}

// Update the status line of the experiment and redraw
func (p *Progress) Update(name string, ep *Episode, total int) {
	p.lines[name] = fmt.Sprintf("Episode: %*d/%d, Reward: %10.3f, Steps: %6d (%s)",
		len(fmt.Sprint(total)), ep.Index+1, total, ep.Reward, ep.Steps, ep.Reason)
	for _, n := range p.order {
		fmt.Fprintf(p.writers[n], "Exp: %*s, %s\n", p.longestNameLen, n, p.lines[n])
	}
	p.writer.Flush()
}

func (p *Progress) Stop() {
	p.writer.Stop()
}
