// Package engine assembles calculation results into a Report and renders it
// as an aligned table, a single JSON document or newline-delimited JSON.
package engine
