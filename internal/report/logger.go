package report

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/kvesta/pomvuln/config"
)

// Logger writes the line-oriented run log. Under GitHub Actions the
// warning and error lines become workflow commands so they show up as
// annotations on the run.
type Logger struct {
	l *log.Logger

	Annotations bool
}

func NewLogger(w io.Writer, annotations bool) *Logger {
	flags := log.LstdFlags
	if annotations {
		// the runner stamps every line itself
		flags = 0
	}

	return &Logger{
		l:           log.New(w, "", flags),
		Annotations: annotations,
	}
}

// InActions reports whether the process runs inside a GitHub Actions job
func InActions() bool {
	return os.Getenv("GITHUB_ACTIONS") == "true"
}

func (lg *Logger) Infof(format string, v ...interface{}) {
	lg.l.Printf(format, v...)
}

func (lg *Logger) Warningf(format string, v ...interface{}) {
	msg := fmt.Sprintf(format, v...)
	if lg.Annotations {
		lg.l.Print("::warning::" + escapeData(msg))
		return
	}

	lg.l.Print(config.Yellow("[WARN] ") + msg)
}

// Fatal logs the single terminal error of a failed run
func (lg *Logger) Fatal(err error) {
	if lg.Annotations {
		lg.l.Print("::error::" + escapeData(err.Error()))
		return
	}

	lg.l.Print(config.Red("[ERROR] ") + err.Error())
}

// escapeData follows the workflow command rules for message data
func escapeData(s string) string {
	return strings.NewReplacer("%", "%25", "\r", "%0D", "\n", "%0A").Replace(s)
}
