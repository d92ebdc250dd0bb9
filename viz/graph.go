// ABOUTME: Graphviz renderings of the deal pipeline and a customer's records
// ABOUTME: Produces XDOT source via go-graphviz
package viz

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"
	"github.com/goccy/go-graphviz/cgraph"
	"github.com/harperreed/salescrm/db"
	"github.com/harperreed/salescrm/models"
)

// stageFlow lists the forward transitions drawn between pipeline stages.
var stageFlow = [][2]string{
	{models.StageProspecting, models.StageQualification},
	{models.StageQualification, models.StageProposal},
	{models.StageProposal, models.StageNegotiation},
	{models.StageNegotiation, models.StageClosedWon},
	{models.StageNegotiation, models.StageClosedLost},
}

var stageColors = map[string]string{
	models.StageProspecting:   "lightgray",
	models.StageQualification: "lightblue",
	models.StageProposal:      "lightyellow",
	models.StageNegotiation:   "orange",
	models.StageClosedWon:     "lightgreen",
	models.StageClosedLost:    "lightpink",
}

type GraphGenerator struct {
	store *db.Store
}

func NewGraphGenerator(store *db.Store) *GraphGenerator {
	return &GraphGenerator{store: store}
}

// render creates a graph, lets build populate it, and returns XDOT source.
func render(ctx context.Context, build func(*cgraph.Graph) error) (string, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create graphviz: %w", err)
	}
	defer func() { _ = gv.Close() }()

	graph, err := gv.Graph()
	if err != nil {
		return "", fmt.Errorf("failed to create graph: %w", err)
	}
	defer func() { _ = graph.Close() }()

	if err := build(graph); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := gv.Render(ctx, graph, graphviz.XDOT, &buf); err != nil {
		return "", fmt.Errorf("failed to render graph: %w", err)
	}
	return buf.String(), nil
}

// GeneratePipelineGraph draws each stage with its deals hanging off it.
func (g *GraphGenerator) GeneratePipelineGraph(ctx context.Context) (string, error) {
	pipeline, err := g.store.Stats.Pipeline(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load pipeline: %w", err)
	}
	deals, err := g.store.Deals.ListWithCustomer(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to fetch deals: %w", err)
	}

	totals := make(map[string]db.StageTotal, len(pipeline))
	for _, st := range pipeline {
		totals[st.Stage] = st
	}

	return render(ctx, func(graph *cgraph.Graph) error {
		graph.SetLabel("Deal Pipeline")
		graph.SetRankDir(cgraph.LRRank)

		stageNodes := make(map[string]*cgraph.Node, len(models.Stages))
		for _, stage := range models.Stages {
			node, err := graph.CreateNodeByName("stage_" + stage)
			if err != nil {
				return fmt.Errorf("failed to create stage node: %w", err)
			}
			st := totals[stage]
			node.SetLabel(fmt.Sprintf("%s\n%d deals\n%s", stage, st.Count, formatMoney(st.Value)))
			node.SetShape("box")
			node.SetStyle("filled")
			node.SetFillColor(stageColors[stage])
			stageNodes[stage] = node
		}

		for _, step := range stageFlow {
			edge, err := graph.CreateEdgeByName(step[0]+"_"+step[1], stageNodes[step[0]], stageNodes[step[1]])
			if err != nil {
				return fmt.Errorf("failed to create edge: %w", err)
			}
			edge.SetStyle("bold")
			if step[1] == models.StageClosedLost {
				edge.SetStyle("dashed")
			}
		}

		for _, deal := range deals {
			stageNode, ok := stageNodes[deal.Stage]
			if !ok {
				continue
			}
			node, err := graph.CreateNodeByName(fmt.Sprintf("deal_%d", deal.ID))
			if err != nil {
				return fmt.Errorf("failed to create deal node: %w", err)
			}
			node.SetLabel(fmt.Sprintf("%s\n%s\n%s · %d%%", deal.Title, deal.CustomerName, formatMoney(deal.Value), deal.Probability))
			node.SetShape("note")
			if _, err := graph.CreateEdgeByName(fmt.Sprintf("in_%d", deal.ID), stageNode, node); err != nil {
				return fmt.Errorf("failed to create edge: %w", err)
			}
		}
		return nil
	})
}

// GenerateCustomerGraph draws one customer with its contacts, deals, and activities.
func (g *GraphGenerator) GenerateCustomerGraph(ctx context.Context, customerID int64) (string, error) {
	detail, err := g.store.Customers.GetDetail(ctx, customerID)
	if err != nil {
		return "", err
	}

	return render(ctx, func(graph *cgraph.Graph) error {
		graph.SetLabel(detail.Name)

		center, err := graph.CreateNodeByName("customer")
		if err != nil {
			return fmt.Errorf("failed to create customer node: %w", err)
		}
		center.SetLabel(fmt.Sprintf("%s\n(%s)", detail.Name, detail.Status))
		center.SetShape("box")
		center.SetStyle("filled")
		center.SetFillColor("lightblue")

		link := func(name, label, shape, color string) error {
			node, err := graph.CreateNodeByName(name)
			if err != nil {
				return fmt.Errorf("failed to create node: %w", err)
			}
			node.SetLabel(label)
			node.SetShape(cgraph.Shape(shape))
			node.SetStyle("filled")
			node.SetFillColor(color)
			if _, err := graph.CreateEdgeByName("has_"+name, center, node); err != nil {
				return fmt.Errorf("failed to create edge: %w", err)
			}
			return nil
		}

		for _, c := range detail.Contacts {
			label := c.FullName()
			if c.Position != "" {
				label += "\n" + c.Position
			}
			if err := link(fmt.Sprintf("contact_%d", c.ID), label, "ellipse", "lightgreen"); err != nil {
				return err
			}
		}
		for _, d := range detail.Deals {
			label := fmt.Sprintf("%s\n%s\n(%s)", d.Title, formatMoney(d.Value), d.Stage)
			if err := link(fmt.Sprintf("deal_%d", d.ID), label, "diamond", "lightyellow"); err != nil {
				return err
			}
		}
		for _, a := range detail.Activities {
			label := fmt.Sprintf("%s\n%s · %s", a.Subject, a.Type, a.Status)
			if err := link(fmt.Sprintf("activity_%d", a.ID), label, "note", "white"); err != nil {
				return err
			}
		}
		return nil
	})
}
