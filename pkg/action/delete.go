package action

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/filekit/dupfind/pkg/registry"
	"github.com/filekit/dupfind/pkg/resolver"
)

// goToken is the go-ahead input that executes the pending deletions.
const goToken = "go"

// Deleter runs one interactive session per group: the master starts kept,
// every duplicate starts marked for deletion, numeric input toggles an
// entry, the go-ahead token deletes whatever is still marked. End of input
// abandons the current group without deleting anything and processing
// continues with the next group.
type Deleter struct {
	in       *bufio.Scanner
	out      io.Writer
	failures int
}

type decision struct {
	rec  *registry.FileRecord
	keep bool
}

func NewDeleter(in io.Reader, out io.Writer) *Deleter {
	return &Deleter{
		in:  bufio.NewScanner(in),
		out: out,
	}
}

func (d *Deleter) Dispatch(group *resolver.Group) {
	decisions := make([]*decision, 0, len(group.Duplicates)+1)
	decisions = append(decisions, &decision{rec: group.Master, keep: true})
	for _, dup := range group.Duplicates {
		decisions = append(decisions, &decision{rec: dup})
	}

	render := true
	for {
		if render {
			d.renderListing(group.Digest, decisions)
			render = false
		}

		fmt.Fprint(d.out, "\n> ")
		if !d.in.Scan() {
			fmt.Fprintln(d.out, "*** EOF *** no action taken")
			return
		}
		input := strings.TrimSpace(d.in.Text())

		if strings.HasPrefix(input, goToken) {
			d.execute(decisions)
			return
		}

		if n, err := strconv.Atoi(input); err == nil && n > 0 {
			if n <= len(decisions) {
				decisions[n-1].keep = !decisions[n-1].keep
				render = true
			} else {
				fmt.Fprintf(d.out, "no file number %d\n", n)
			}
			continue
		}

		fmt.Fprintln(d.out, "invalid input - please type a number or 'go'")
	}
}

func (d *Deleter) renderListing(digest string, decisions []*decision) {
	fmt.Fprintf(d.out, "\nDisposition of files with digest %s\n\n", digest)
	for i, dec := range decisions {
		marker := ' '
		if dec.keep {
			marker = '*'
		}
		fmt.Fprintf(d.out, "%5d %c %s (%d links)\n", i+1, marker, dec.rec.Path, dec.rec.Links)
	}
	fmt.Fprint(d.out, "\nFiles marked (*) will be kept - the rest deleted\n"+
		"To toggle a file's status type its number\n"+
		"Type 'go' to go ahead with the delete\n")
}

func (d *Deleter) execute(decisions []*decision) {
	for _, dec := range decisions {
		if dec.keep {
			continue
		}
		if err := os.Remove(dec.rec.Path); err != nil {
			log.WithError(err).Warnf("Unable to delete %q", dec.rec.Path)
			d.failures++
			continue
		}
		fmt.Fprintf(d.out, "%s deleted\n", dec.rec.Path)
	}
}

func (d *Deleter) Failures() int {
	return d.failures
}
