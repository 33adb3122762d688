// Package dataset loads yearly index return observations from CSV files and
// Excel workbooks, validates their shape and produces the dataset consumed
// by the returns engine. Derived columns present in the input are discarded
// and recomputed so the engine never sees inconsistent rows.
package dataset
