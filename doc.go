// Package parametric declares, coerces and validates untrusted key/value
// payloads (query strings, JSON bodies, config maps) into clean output maps.
//
// Two modes share one Registry of named building blocks:
//
// - Field mode: a Schema of Fields, each running its filters in declaration
//   order and then every validator. Invalid values are dropped from the output
//   and reported as Issues (JSON Pointer path, code, message).
// - Policy mode: Params, where each key toggles options (coerce, nested,
//   multiple, options, match, default, nullable) that assemble a chain of
//   policies applied in a fixed precedence.
//
// Design policy:
// - Names are resolved at declaration; Build reports unknown ones.
// - Resolution never fails; callers decide whether Issues mean failure.
// - Schema, Params and Registry are read-only after Build and safe for
//   concurrent Resolve calls.
//
// Typical usage:
//
//	s := parametric.NewSchema()
//	s.Field("title").Type("string").Present()
//	s.Field("status").Options("draft", "published").Default("draft")
//	s.Field("tags").Type("string").Filter("trim")
//	out, iss := s.MustBuild().Resolve(payload)
//
//	p := parametric.NewParams()
//	p.Param("ids", "IDs", parametric.Coerce("integer"), parametric.Multiple())
//	out, iss = p.MustBuild().Resolve(query)
package parametric
