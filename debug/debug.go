package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Reconcile bool
	Policy    bool
	Observe   bool
	Journal   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Reconcile = boolEnv("RC_DEBUG_RECONCILE")
	d.Policy = boolEnv("RC_DEBUG_POLICY")
	d.Observe = boolEnv("RC_DEBUG_OBSERVE")
	d.Journal = boolEnv("RC_DEBUG_JOURNAL")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Reconcile() bool {
	return d.Reconcile
}
func Policy() bool {
	return d.Policy
}
func Observe() bool {
	return d.Observe
}
func Journal() bool {
	return d.Journal
}

// Enable turns on debug output for the given env variable names without
// touching the environment. Unknown names are ignored.
func Enable(names ...string) {
	for _, n := range names {
		switch n {
		case "RC_DEBUG_RECONCILE":
			d.Reconcile = true
		case "RC_DEBUG_POLICY":
			d.Policy = true
		case "RC_DEBUG_OBSERVE":
			d.Observe = true
		case "RC_DEBUG_JOURNAL":
			d.Journal = true
		}
	}
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(Out, "%v\n", v)
		return
	}
	Out.Write(append(d, '\n'))
}
