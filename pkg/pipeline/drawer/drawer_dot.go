package drawer

import (
	"fmt"
	"io"
	"sort"
	"text/template"

	"github.com/dominikbraun/graph"
	"github.com/pkg/errors"
	"gopkg.in/go-playground/colors.v1" //nolint

	"github.com/askiada/headturn/internal/store"
	"github.com/askiada/headturn/pkg/pipeline/measure"
	"github.com/askiada/headturn/pkg/pipeline/model"
)

// measureAttribute holds the measure of a stage. It is rendered as part of the HTML label.
const measureAttribute = "measure"

// DOTDrawer renders the frame flow as a Graphviz DOT digraph.
type DOTDrawer struct {
	store store.Updatable[string, string]
	graph graph.Graph[string, string]
	wrt   io.Writer
}

// NewDOTDrawer creates a drawer writing to wrt.
func NewDOTDrawer(wrt io.Writer) *DOTDrawer {
	st := store.NewMemory[string, string]()

	return &DOTDrawer{
		store: st,
		graph: graph.NewWithStore(graph.StringHash, st, graph.Directed(), graph.PreventCycles()),
		wrt:   wrt,
	}
}

// AddStep adds a stage to the graph.
func (d *DOTDrawer) AddStep(name string) error {
	err := d.graph.AddVertex(name, graph.VertexAttribute("shape", "box"))
	if err != nil {
		return errors.Wrap(err, "unable to add vertex")
	}

	return nil
}

// AddLink adds a link between parent and children stages.
func (d *DOTDrawer) AddLink(parentName, childrenName string) error {
	err := d.graph.AddEdge(parentName, childrenName)
	if err != nil {
		return errors.Wrapf(err, "unable to add edge from %s to %s", parentName, childrenName)
	}

	return nil
}

const maxRGB = 240

// AddMeasure labels every outcome with its frame count and average filter time, and colours the
// links by the share of frames going through them, from blue (none) to red (all).
func (d *DOTDrawer) AddMeasure(msr measure.Measure) error {
	metrics := msr.AllMetrics()

	var frames int64
	for _, mt := range metrics {
		frames += mt.Total()
	}

	for name, mt := range metrics {
		fraction := 0.0
		if frames > 0 {
			fraction = float64(mt.Total()) / float64(frames)
		}

		colour, err := colors.RGB(uint8(maxRGB*fraction), 0, uint8(maxRGB-maxRGB*fraction)) //nolint
		if err != nil {
			return errors.Wrap(err, "unable to get colour")
		}

		err = d.store.UpdateVertex(name, func(p *graph.VertexProperties) {
			p.Attributes[measureAttribute] = fmt.Sprintf("%d frames, avg %s", mt.Total(), mt.AVGDuration())
			p.Attributes["color"] = colour.ToHEX().String()
		})
		if err != nil {
			return errors.Wrapf(err, "unable to label %s", name)
		}

		err = d.graph.UpdateEdge(model.StartStage, name,
			graph.EdgeAttribute("label", fmt.Sprintf("%d", mt.Total())),
			graph.EdgeAttribute("fontcolor", "blue"),
			graph.EdgeAttribute("color", colour.ToHEX().String()),
		)
		if err != nil {
			return errors.Wrapf(err, "unable to update edge to %s", name)
		}

		if mt.Views() == 0 {
			continue
		}

		err = d.graph.UpdateEdge(name, model.EndStage,
			graph.EdgeAttribute("label", fmt.Sprintf("%d views", mt.Views())),
			graph.EdgeAttribute("color", colour.ToHEX().String()),
		)
		if err != nil {
			return errors.Wrapf(err, "unable to update edge from %s", name)
		}
	}

	return nil
}

// Draw writes the DOT description of the graph.
func (d *DOTDrawer) Draw() error {
	desc, err := d.generateDOT()
	if err != nil {
		return errors.Wrap(err, "unable to generate DOT description")
	}

	return renderDOT(d.wrt, desc)
}

//nolint:lll //this is a template
const dotTemplate = `strict {{.GraphType}} {
{{- range $k, $v := .Attributes}}
	{{$k}}="{{$v}}";
{{- end}}
{{- range $s := .Statements}}
	"{{.Source}}" {{if .Target}}{{$.EdgeOperator}} "{{.Target}}" [ {{range $k, $v := .EdgeAttributes}}{{$k}}="{{$v}}", {{end}}weight={{.EdgeWeight}} ]{{else}}[ {{range $k, $v := .HTMLAttributes}}{{$k}}={{$v}}, {{end}}{{range $k, $v := .SourceAttributes}}{{$k}}="{{$v}}", {{end}}weight={{.SourceWeight}} ]{{end}};
{{- end}}
}
`

type description struct {
	GraphType    string
	Attributes   map[string]string
	EdgeOperator string
	Statements   []statement
}

type statement struct {
	Source           string
	Target           string
	SourceAttributes map[string]string
	HTMLAttributes   map[string]string
	EdgeAttributes   map[string]string
	SourceWeight     int
	EdgeWeight       int
}

// generateDOT walks the graph in name order so that the output is stable.
func (d *DOTDrawer) generateDOT() (description, error) {
	desc := description{
		GraphType:    "digraph",
		Attributes:   map[string]string{"rankdir": "LR"},
		EdgeOperator: "->",
	}

	adjacencyMap, err := d.graph.AdjacencyMap()
	if err != nil {
		return desc, errors.Wrap(err, "unable to get adjacency map")
	}

	vertices := make([]string, 0, len(adjacencyMap))
	for vertex := range adjacencyMap {
		vertices = append(vertices, vertex)
	}
	sort.Strings(vertices)

	for _, vertex := range vertices {
		_, sourceProperties, err := d.graph.VertexWithProperties(vertex)
		if err != nil {
			return desc, errors.Wrap(err, "unable to get vertex properties")
		}

		attributes := make(map[string]string, len(sourceProperties.Attributes))
		htmlAttributes := make(map[string]string)

		for k, v := range sourceProperties.Attributes {
			if k == measureAttribute {
				htmlAttributes["label"] = fmt.Sprintf(`<%s <BR /> <FONT POINT-SIZE="12">%s</FONT>>`, vertex, v)

				continue
			}

			attributes[k] = v
		}

		desc.Statements = append(desc.Statements, statement{
			Source:           vertex,
			SourceWeight:     sourceProperties.Weight,
			SourceAttributes: attributes,
			HTMLAttributes:   htmlAttributes,
		})

		targets := make([]string, 0, len(adjacencyMap[vertex]))
		for target := range adjacencyMap[vertex] {
			targets = append(targets, target)
		}
		sort.Strings(targets)

		for _, target := range targets {
			edge := adjacencyMap[vertex][target]
			desc.Statements = append(desc.Statements, statement{
				Source:         vertex,
				Target:         target,
				EdgeWeight:     edge.Properties.Weight,
				EdgeAttributes: edge.Properties.Attributes,
			})
		}
	}

	return desc, nil
}

func renderDOT(wrt io.Writer, desc description) error {
	tpl, err := template.New("dotTemplate").Parse(dotTemplate)
	if err != nil {
		return errors.Wrap(err, "unable to parse template")
	}

	err = tpl.Execute(wrt, desc)
	if err != nil {
		return errors.Wrap(err, "unable to execute template")
	}

	return nil
}

var _ Drawer = (*DOTDrawer)(nil)
