// Package ui renders the alarm page. Every render is a full redraw of the
// list from the registry snapshot it is given.
package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"

	"github.com/Raimguzhinov/alarm-go/internal/alarm"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// DayOptions are the day selector entries, in display order.
var DayOptions = []string{"Lun", "Mar", "Mié", "Jue", "Vie", "Sáb", "Dom"}

const defaultTitle = "Alarmas"

type listView struct {
	Empty  bool
	Alarms []alarm.Alarm
	Prompt string
}

type pageView struct {
	Title string
	Days  []string
	List  listView
}

type Renderer struct {
	tpl   *template.Template
	title string
}

func NewRenderer(title string) (*Renderer, error) {
	tpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("ui - NewRenderer - ParseFS: %w", err)
	}
	if title == "" {
		title = defaultTitle
	}
	return &Renderer{tpl: tpl, title: title}, nil
}

// Static returns the embedded stylesheet and script.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

func newListView(alarms []alarm.Alarm) listView {
	return listView{Empty: len(alarms) == 0, Alarms: alarms, Prompt: alarm.DeletePrompt}
}

// RenderList draws the placeholder and one row per alarm.
func (r *Renderer) RenderList(w io.Writer, alarms []alarm.Alarm) error {
	return r.tpl.ExecuteTemplate(w, "list", newListView(alarms))
}

// RenderPage draws the whole page around the list.
func (r *Renderer) RenderPage(w io.Writer, alarms []alarm.Alarm) error {
	return r.tpl.ExecuteTemplate(w, "page", pageView{
		Title: r.title,
		Days:  DayOptions,
		List:  newListView(alarms),
	})
}
