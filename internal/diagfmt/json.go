package diagfmt

import (
	"encoding/json"
	"io"
	"strings"

	"loom/internal/expand"
	"loom/internal/session"
)

// ContextJSON представляет вторичное сообщение диагностики для JSON
type ContextJSON struct {
	Message string `json:"message"`
	Target  string `json:"target,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity   string        `json:"severity"`
	Message    string        `json:"message"`
	Target     string        `json:"target,omitempty"`
	Contexts   []ContextJSON `json:"contexts,omitempty"`
	Correction string        `json:"correction,omitempty"`
}

// ArtifactJSON represents one emitted artifact.
type ArtifactJSON struct {
	Kind   string `json:"kind"` // new_type | shape_edit | declaration | augmentation
	Name   string `json:"name,omitempty"`
	Slot   string `json:"slot,omitempty"`
	Owner  string `json:"owner,omitempty"`
	Target string `json:"target,omitempty"`
	Code   string `json:"code,omitempty"`
}

// PhaseJSON represents one phase's execution of an application.
type PhaseJSON struct {
	Phase     string         `json:"phase"`
	Cached    bool           `json:"cached,omitempty"`
	Failed    bool           `json:"failed,omitempty"`
	Artifacts []ArtifactJSON `json:"artifacts,omitempty"`
}

// ExpansionJSON represents everything one application produced.
type ExpansionJSON struct {
	Macro  string      `json:"macro"`
	Target string      `json:"target"`
	Phases []PhaseJSON `json:"phases,omitempty"`
}

// OutputJSON представляет корневую структуру JSON вывода
type OutputJSON struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Expansions  []ExpansionJSON  `json:"expansions,omitempty"`
	Executed    int              `json:"executed"`
	CacheHits   int              `json:"cache_hits"`
	Skipped     int              `json:"skipped"`
	Failed      int              `json:"failed"`
}

// BuildOutput формирует структуру JSON-вывода без сериализации.
func BuildOutput(outcome *session.Outcome, opts JSONOpts) OutputJSON {
	items := outcome.Bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for i := 0; i < maxItems; i++ {
		d := items[i]
		dj := DiagnosticJSON{
			Severity:   d.Severity.String(),
			Message:    d.Message,
			Correction: d.Correction,
		}
		if d.Target != nil {
			dj.Target = d.Target.String()
		}
		if opts.IncludeContexts {
			for _, c := range d.Contexts {
				cj := ContextJSON{Message: c.Msg}
				if c.Target != nil {
					cj.Target = c.Target.String()
				}
				dj.Contexts = append(dj.Contexts, cj)
			}
		}
		diagnostics = append(diagnostics, dj)
	}

	out := OutputJSON{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
		Executed:    outcome.Executed,
		CacheHits:   outcome.CacheHits,
		Skipped:     outcome.Skipped,
		Failed:      outcome.Failed,
	}

	if opts.IncludeArtifacts {
		for _, exp := range outcome.Expansions {
			ej := ExpansionJSON{
				Macro:  exp.Application.MacroName,
				Target: exp.Application.Target.String(),
			}
			for _, res := range exp.Results {
				ej.Phases = append(ej.Phases, PhaseJSON{
					Phase:     res.Phase.String(),
					Failed:    res.Failed(),
					Artifacts: buildArtifacts(res),
				})
			}
			out.Expansions = append(out.Expansions, ej)
		}
	}

	return out
}

func buildArtifacts(r *expand.Result) []ArtifactJSON {
	artifacts := make([]ArtifactJSON, 0, r.ArtifactCount())
	for _, nt := range r.NewTypes {
		artifacts = append(artifacts, ArtifactJSON{
			Kind: "new_type",
			Name: nt.Name,
			Code: nt.Code.String(),
		})
	}
	for _, se := range r.TypeShapeEdits {
		parts := make([]string, len(se.Parts))
		for i, p := range se.Parts {
			parts[i] = p.String()
		}
		artifacts = append(artifacts, ArtifactJSON{
			Kind:  "shape_edit",
			Slot:  se.Slot.String(),
			Owner: se.Owner.String(),
			Code:  strings.Join(parts, ", "),
		})
	}
	for _, pc := range r.Declarations {
		artifacts = append(artifacts, ArtifactJSON{
			Kind:  "declaration",
			Slot:  pc.Placement.String(),
			Owner: pc.Owner.String(),
			Code:  pc.Code.String(),
		})
	}
	for _, a := range r.Augmentations {
		body := a.Code.String()
		if len(a.Parts) > 0 {
			parts := make([]string, len(a.Parts))
			for i, p := range a.Parts {
				parts[i] = p.String()
			}
			body = strings.Join(parts, ", ")
		}
		artifacts = append(artifacts, ArtifactJSON{
			Kind:   "augmentation",
			Slot:   a.Slot.String(),
			Target: a.Target.String(),
			Code:   body,
		})
	}
	return artifacts
}

// JSON форматирует итог сессии в JSON формат.
func JSON(w io.Writer, outcome *session.Outcome, opts JSONOpts) error {
	output := BuildOutput(outcome, opts)
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
