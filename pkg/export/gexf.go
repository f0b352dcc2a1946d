// Package export serializes graphs to GEXF for external visualization
// tools such as Gephi. There is no reader: the file is write-only output.
package export

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/lorispalmarin/twitch-network/pkg/dataset"
	"github.com/lorispalmarin/twitch-network/pkg/graph"
)

// gexfNamespace is the GEXF 1.2 draft schema namespace.
const gexfNamespace = "http://www.gexf.net/1.2draft"

type gexfDoc struct {
	XMLName xml.Name  `xml:"gexf"`
	XMLNS   string    `xml:"xmlns,attr"`
	Version string    `xml:"version,attr"`
	Meta    gexfMeta  `xml:"meta"`
	Graph   gexfGraph `xml:"graph"`
}

type gexfMeta struct {
	Creator     string `xml:"creator"`
	Description string `xml:"description"`
}

type gexfGraph struct {
	Mode            string         `xml:"mode,attr"`
	DefaultEdgeType string         `xml:"defaultedgetype,attr"`
	Attributes      gexfAttributes `xml:"attributes"`
	Nodes           gexfNodes      `xml:"nodes"`
	Edges           gexfEdges      `xml:"edges"`
}

type gexfAttributes struct {
	Class string          `xml:"class,attr"`
	Attrs []gexfAttribute `xml:"attribute"`
}

type gexfAttribute struct {
	ID    string `xml:"id,attr"`
	Title string `xml:"title,attr"`
	Type  string `xml:"type,attr"`
}

type gexfNodes struct {
	Nodes []gexfNode `xml:"node"`
}

type gexfNode struct {
	ID        string         `xml:"id,attr"`
	Label     string         `xml:"label,attr"`
	AttValues *gexfAttValues `xml:"attvalues,omitempty"`
}

type gexfAttValues struct {
	Values []gexfAttValue `xml:"attvalue"`
}

type gexfAttValue struct {
	For   string `xml:"for,attr"`
	Value string `xml:"value,attr"`
}

type gexfEdges struct {
	Edges []gexfEdge `xml:"edge"`
}

type gexfEdge struct {
	ID     string `xml:"id,attr"`
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

// nodeAttributes declares the feature schema once, in a fixed order.
var nodeAttributes = []gexfAttribute{
	{ID: dataset.ColViews, Title: dataset.ColViews, Type: "long"},
	{ID: dataset.ColMature, Title: dataset.ColMature, Type: "boolean"},
	{ID: dataset.ColLifeTime, Title: dataset.ColLifeTime, Type: "long"},
	{ID: dataset.ColCreatedAt, Title: dataset.ColCreatedAt, Type: "string"},
	{ID: dataset.ColUpdatedAt, Title: dataset.ColUpdatedAt, Type: "string"},
	{ID: dataset.ColDeadAccount, Title: dataset.ColDeadAccount, Type: "boolean"},
	{ID: dataset.ColLanguage, Title: dataset.ColLanguage, Type: "string"},
	{ID: dataset.ColAffiliate, Title: dataset.ColAffiliate, Type: "boolean"},
}

func attValuesFor(rec *dataset.FeatureRecord) *gexfAttValues {
	if rec == nil {
		return nil
	}
	return &gexfAttValues{Values: []gexfAttValue{
		{For: dataset.ColViews, Value: strconv.FormatUint(rec.Views, 10)},
		{For: dataset.ColMature, Value: strconv.FormatBool(rec.Mature)},
		{For: dataset.ColLifeTime, Value: strconv.FormatInt(rec.LifeTime, 10)},
		{For: dataset.ColCreatedAt, Value: rec.CreatedAt.Format(dataset.DateLayout)},
		{For: dataset.ColUpdatedAt, Value: rec.UpdatedAt.Format(dataset.DateLayout)},
		{For: dataset.ColDeadAccount, Value: strconv.FormatBool(rec.DeadAccount)},
		{For: dataset.ColLanguage, Value: rec.Language},
		{For: dataset.ColAffiliate, Value: strconv.FormatBool(rec.Affiliate)},
	}}
}

// WriteGEXF serializes the graph as a static undirected GEXF 1.2 document:
// every node with its attached attributes, every edge once.
func WriteGEXF(w io.Writer, g *graph.Graph, description string) error {
	doc := gexfDoc{
		XMLNS:   gexfNamespace,
		Version: "1.2",
		Meta: gexfMeta{
			Creator:     "twitch-network",
			Description: description,
		},
		Graph: gexfGraph{
			Mode:            "static",
			DefaultEdgeType: "undirected",
			Attributes:      gexfAttributes{Class: "node", Attrs: nodeAttributes},
		},
	}

	for _, id := range g.NodeIDs() {
		idStr := strconv.FormatUint(id, 10)
		doc.Graph.Nodes.Nodes = append(doc.Graph.Nodes.Nodes, gexfNode{
			ID:        idStr,
			Label:     idStr,
			AttValues: attValuesFor(g.Features(id)),
		})
	}

	edgeID := 0
	g.ForEachEdge(func(a, b uint64) {
		doc.Graph.Edges.Edges = append(doc.Graph.Edges.Edges, gexfEdge{
			ID:     strconv.Itoa(edgeID),
			Source: strconv.FormatUint(a, 10),
			Target: strconv.FormatUint(b, 10),
		})
		edgeID++
	})

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return fmt.Errorf("write gexf header: %w", err)
	}
	encoder := xml.NewEncoder(w)
	encoder.Indent("", "  ")
	if err := encoder.Encode(doc); err != nil {
		return fmt.Errorf("encode gexf: %w", err)
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return nil
}

// ExportFile writes the graph to a GEXF file, gzip-compressed when the
// path carries a .gz suffix.
func ExportFile(path string, g *graph.Graph, description string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}

	var w io.Writer = file
	var gz *gzip.Writer
	if strings.HasSuffix(path, ".gz") {
		gz = gzip.NewWriter(file)
		w = gz
	}

	if err := WriteGEXF(w, g, description); err != nil {
		file.Close()
		return err
	}

	if gz != nil {
		if err := gz.Close(); err != nil {
			file.Close()
			return fmt.Errorf("close gzip stream for %s: %w", path, err)
		}
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}
