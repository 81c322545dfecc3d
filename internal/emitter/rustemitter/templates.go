package rustemitter

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// render parses and executes one template over precomputed view data. All
// naming decisions happen before templating; templates only do layout.
func render(name, text string, data any) (string, error) {
	t, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render %s: %w", name, err)
	}
	return buf.String(), nil
}

// docLines splits documentation into its lines so each one becomes a
// separate `///` comment; multi-line docs are never collapsed.
func docLines(doc string) []string {
	doc = strings.TrimRight(doc, "\n")
	if strings.TrimSpace(doc) == "" {
		return nil
	}
	return strings.Split(doc, "\n")
}

// rustString escapes a string for use inside a write! format literal.
func rustString(s string) string {
	r := strings.NewReplacer(
		`\`, `\\`,
		`"`, `\"`,
		"{", "{{",
		"}", "}}",
	)
	return r.Replace(s)
}

// prelude is the fixed runtime surface every generated module carries: the
// Detailed wrapper pairing an operation error with what actix needs to turn
// it into an HTTP response.
const prelude = `// Generated by apigen. Do not edit by hand.
#![allow(unused_imports)]

use std::collections::HashMap;
use std::fmt::Display;

use actix_web::http::StatusCode;
use actix_web::{web, App, HttpRequest, HttpServer, ResponseError};
use async_trait::async_trait;
use serde::{Deserialize, Serialize};

/// Pairs an operation error with the context needed to render an HTTP
/// response: the status line comes from the error's status mapping and the
/// body carries its Display text.
#[derive(Debug, Clone, PartialEq)]
pub struct Detailed<E> {
    pub error: E,
}

impl<E> From<E> for Detailed<E> {
    fn from(error: E) -> Self {
        Detailed { error }
    }
}

impl<E: Display> Display for Detailed<E> {
    fn fmt(&self, f: &mut std::fmt::Formatter<'_>) -> std::fmt::Result {
        write!(f, "{}", self.error)
    }
}

impl<E: ResponseError> ResponseError for Detailed<E> {
    fn status_code(&self) -> StatusCode {
        self.error.status_code()
    }
}
`

const structTemplate = `{{range .DocLines}}/// {{.}}
{{end}}#[derive(Serialize, Deserialize, Clone, PartialEq)]
pub struct {{.Title}} {
{{range .Fields}}{{range .DocLines}}    /// {{.}}
{{end}}{{if .Rename}}    #[serde(rename = "{{.Wire}}")]
{{end}}    pub {{.Name}}: {{.Type}},
{{end}}}
`

const aliasTemplate = `{{range .DocLines}}/// {{.}}
{{end}}pub type {{.Title}} = {{.Target}};
`

const errorTemplate = `// Custom error
#[derive(Debug, Serialize, Deserialize, Clone, PartialEq, Eq)]
pub enum {{.ErrorType}} {
{{range .Variants}}    {{.Ident}},
{{end}}}

impl Display for {{.ErrorType}} {
    fn fmt(&self, f: &mut std::fmt::Formatter<'_>) -> std::fmt::Result {
        match self {
{{range .Variants}}            {{$.ErrorType}}::{{.Ident}} => {
                write!(f, "{{.Detail}}")
            }
{{end}}        }
    }
}

impl std::error::Error for {{.ErrorType}} {}

impl ResponseError for {{.ErrorType}} {
    fn status_code(&self) -> StatusCode {
        match self {
{{range .Variants}}            {{$.ErrorType}}::{{.Ident}} => StatusCode::{{.CodeName}},
{{end}}        }
    }
}
`

const traitTemplate = `#[async_trait(?Send)]
pub trait ApiService<S>
where
    S: Send + Sync + 'static,
{
{{range $i, $m := .Methods}}{{if $i}}
{{end}}{{range $m.DocLines}}    /// {{.}}
{{end}}    async fn {{$m.Name}}(
        data: web::Data<S>,
{{range $m.Args}}        {{.Name}}: {{.Type}},
{{end}}    ) -> {{$m.Return}};
{{end}}}
`

const routeTemplate = `async fn {{.Name}}_route<T, S>(
    data: web::Data<S>,
{{range .Args}}    {{.Name}}: {{.Type}},
{{end}}) -> {{.Return}}
where
    T: ApiService<S>,
    S: Send + Sync + 'static,
{
    T::{{.Name}}(data{{range .Args}}, {{.Name}}{{end}}).await
}
`

const runServiceTemplate = `/// Serves the generated operations until shutdown. The state value is shared
/// read-only across concurrent dispatches; implementations synchronize any
/// mutation themselves.
pub async fn run_service<T, S>(bind: &str, initial_state: S) -> Result<(), std::io::Error>
where
    T: ApiService<S> + 'static,
    S: Send + Sync + 'static,
{
    let state = web::Data::new(initial_state);
    HttpServer::new(move || {
        App::new()
            .app_data(state.clone())
{{range .Routes}}            .route("{{.Path}}", web::{{.Method}}().to({{.Name}}_route::<T, S>))
{{end}}    })
    .bind(bind)?
    .run()
    .await
}
`
