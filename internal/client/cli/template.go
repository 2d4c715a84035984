package cli

import "text/template"

const workoutTemplateView = `
=== Workout Template ===

Name:      {{.Name}}
Local ID:  {{.LocalID}}
Server ID: {{serverID .ServerID}}
{{- if .Description }}
About:     {{.Description}}
{{- end}}
Updated:   {{when .UpdatedAt}}
{{- if .Exercises }}

Exercises:
{{- range .Exercises }}
  - {{.Name}}: {{.Sets}}x{{.Reps}}{{if .WeightKg}} @ {{.WeightKg}} kg{{end}}
{{- end}}
{{- end}}
`

const workoutInstanceView = `
=== Workout ===

Name:      {{.Name}}
Local ID:  {{.LocalID}}
Server ID: {{serverID .ServerID}}
{{- if .TemplateLocalID }}
Template:  {{.TemplateLocalID}}
{{- end}}
Started:   {{when .StartedAt}}
{{- if .CompletedAt }}
Completed: {{when .CompletedAt}}
{{- end}}
{{- if .Notes }}
Notes:     {{.Notes}}
{{- end}}
`

const exerciseLogView = `
=== Exercise Log ===

Exercise:  {{.ExerciseName}}
Local ID:  {{.LocalID}}
Server ID: {{serverID .ServerID}}
Source:    {{.Source}}
Performed: {{when .PerformedAt}}
{{- if .InstanceLocalID }}
Workout:   {{.InstanceLocalID}}
{{- end}}
{{- if .SetNumber }}
Set:       {{.SetNumber}}
{{- end}}
{{- if .Reps }}
Reps:      {{.Reps}}
{{- end}}
{{- if .WeightKg }}
Weight:    {{.WeightKg}} kg
{{- end}}
{{- if .DurationSeconds }}
Duration:  {{.DurationSeconds}} s
{{- end}}
{{- if .DistanceMeters }}
Distance:  {{.DistanceMeters}} m
{{- end}}
{{- if .AvgHeartRate }}
Avg HR:    {{.AvgHeartRate}} bpm
{{- end}}
{{- if .Notes }}
Notes:     {{.Notes}}
{{- end}}
`

var viewFuncs = template.FuncMap{
	"serverID": displayServerID,
	"when":     displayAny,
}

var (
	templateTmpl = template.Must(template.New("template").Funcs(viewFuncs).Parse(workoutTemplateView))
	instanceTmpl = template.Must(template.New("instance").Funcs(viewFuncs).Parse(workoutInstanceView))
	logTmpl      = template.Must(template.New("log").Funcs(viewFuncs).Parse(exerciseLogView))
)
