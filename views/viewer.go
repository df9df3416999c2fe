// Package views renders the preview pages. Components are plain
// templ.ComponentFunc values; nothing here is generated.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Viewer renders the preview page: scene stats, the current plan and
// the re-plan controls, all driven by datastar signals.
func Viewer(title string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, "<!DOCTYPE html>\n<html lang=\"en\">\n<head>\n<meta charset=\"utf-8\"/>\n<title>"); err != nil {
			return err
		}
		if _, err := io.WriteString(w, templ.EscapeString(title)); err != nil {
			return err
		}
		_, err := io.WriteString(w, `</title>
<script type="module" src="https://cdn.jsdelivr.net/gh/starfederation/datastar/bundles/datastar.js"></script>
<style>
body { font-family: monospace; margin: 2rem; background: #111; color: #ddd; }
button { margin-right: 0.5rem; }
pre { background: #1a1a1a; padding: 1rem; overflow: auto; max-height: 24rem; }
</style>
</head>
<body data-signals="{planState: '{}', planRequest: ''}" data-on-load="@get('/pathstream')">
<h1>`+templ.EscapeString(title)+`</h1>
<div id="plan-summary">no plan yet</div>
<p>
<button data-on-click="$planRequest = JSON.stringify({mode: 'orbit'}); @post('/plan')">orbit</button>
<button data-on-click="$planRequest = JSON.stringify({mode: 'panorama'}); @post('/plan')">panorama</button>
<button data-on-click="$planRequest = JSON.stringify({mode: 'safe'}); @post('/plan')">safe route</button>
</p>
<pre data-text="$planState"></pre>
</body>
</html>
`)
		return err
	})
}

// PlanSummary is the fragment swapped into the page whenever a new
// plan lands.
func PlanSummary(label, mode string, frameCount int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w, `<div id="plan-summary">%s &middot; %s &middot; %d frames</div>`,
			templ.EscapeString(label), templ.EscapeString(mode), frameCount)
		return err
	})
}
