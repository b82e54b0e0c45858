// Package apiconnect wires the messledger.v1 LedgerService to Connect.
package apiconnect

import "encoding/json"

// JSONCodec encodes plain Go message structs as JSON.
// It replaces Connect's default protobuf-JSON codec under the same name, so
// clients and handlers talk "application/json".
type JSONCodec struct{}

// Name implements connect.Codec.
func (JSONCodec) Name() string { return "json" }

// Marshal implements connect.Codec.
func (JSONCodec) Marshal(msg any) ([]byte, error) { return json.Marshal(msg) }

// Unmarshal implements connect.Codec.
func (JSONCodec) Unmarshal(data []byte, msg any) error { return json.Unmarshal(data, msg) }
