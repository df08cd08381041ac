// Package golden holds the checked-in output of the generator for
// testdata/order_created.avsc. TestRender_Golden compares fresh output
// against orders.gen.go; run it with -update to rewrite the file.
package golden

//go:generate go run ../../../cmd/schemapub generate --schema ../testdata/order_created.avsc --output orders.gen.go --package golden
