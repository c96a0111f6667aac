package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/vijaymanbajracharya/stratcol/pkg/cache"
	stratio "github.com/vijaymanbajracharya/stratcol/pkg/io"
	"github.com/vijaymanbajracharya/stratcol/pkg/observability"
	"github.com/vijaymanbajracharya/stratcol/pkg/strat"
)

// Load reads a column file. The format follows the extension (.yaml/.yml
// for YAML, anything else JSON).
func Load(ctx context.Context, path string) ([]strat.Layer, stratio.Metadata, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	layers, meta, err := stratio.Import(path)
	hooks.OnLoadComplete(ctx, path, len(layers), time.Since(start), err)
	return layers, meta, err
}

// ParseJSON reads a column document from raw JSON bytes.
func ParseJSON(data []byte) ([]strat.Layer, stratio.Metadata, error) {
	return stratio.ReadJSON(bytes.NewReader(data))
}

// ColumnHash is the content hash of a layer list. Two lists with the same
// layers in the same order hash equally regardless of file metadata.
func ColumnHash(layers []strat.Layer) string {
	data, _ := json.Marshal(stratio.NewDocument(layers, "").Layers)
	return cache.Hash(data)
}
