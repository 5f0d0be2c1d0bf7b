package pmtiles

import (
	"math"
	"strconv"

	"trail/internal/domain/entity"
	"trail/internal/geo"

	"github.com/paulmach/orb"
)

// NodeID identifies a vertex of the walking graph.
type NodeID int64

// Edge is a walkable connection. Cost is the distance scaled by the way
// kind so footways are preferred over roads of the same length.
type Edge struct {
	To       NodeID
	Distance float64
	Cost     float64
}

// footwayBias makes a footway cheaper than a road of equal length.
const footwayBias = 0.9

// WalkGraph is an undirected walking network built from tile ways.
type WalkGraph struct {
	Nodes    map[NodeID]orb.Point
	Edges    map[NodeID][]Edge
	nodeIdx  int64
	pointMap map[string]NodeID
}

func NewWalkGraph() *WalkGraph {
	return &WalkGraph{
		Nodes:    make(map[NodeID]orb.Point),
		Edges:    make(map[NodeID][]Edge),
		pointMap: make(map[string]NodeID),
	}
}

// AddWay connects consecutive way points in both directions; pedestrians
// ignore one-way restrictions.
func (g *WalkGraph) AddWay(way *WaySegment) {
	if len(way.Points) < 2 {
		return
	}

	bias := 1.0
	if way.Kind == WayFootway {
		bias = footwayBias
	}

	prev := g.getOrCreateNode(way.Points[0])
	for i := 1; i < len(way.Points); i++ {
		curr := g.getOrCreateNode(way.Points[i])
		if curr == prev {
			continue
		}

		dist := pointDistance(way.Points[i-1], way.Points[i])
		g.addEdge(prev, curr, dist, dist*bias)
		prev = curr
	}
}

func (g *WalkGraph) addEdge(from, to NodeID, distance, cost float64) {
	g.Edges[from] = append(g.Edges[from], Edge{To: to, Distance: distance, Cost: cost})
	g.Edges[to] = append(g.Edges[to], Edge{To: from, Distance: distance, Cost: cost})
}

func (g *WalkGraph) getOrCreateNode(point orb.Point) NodeID {
	key := pointKey(point)

	if id, exists := g.pointMap[key]; exists {
		return id
	}

	g.nodeIdx++
	id := NodeID(g.nodeIdx)
	g.Nodes[id] = point
	g.pointMap[key] = id

	return id
}

// pointKey rounds to 5 decimals (about 1 m) so tile seams share nodes.
func pointKey(p orb.Point) string {
	lat := math.Round(p[1]*100000) / 100000
	lng := math.Round(p[0]*100000) / 100000

	return strconv.FormatFloat(lat, 'f', 5, 64) + "," + strconv.FormatFloat(lng, 'f', 5, 64)
}

// FindNearestNode returns the node closest to point and its distance in meters.
func (g *WalkGraph) FindNearestNode(point orb.Point) (NodeID, float64, bool) {
	if len(g.Nodes) == 0 {
		return 0, 0, false
	}

	var nearestID NodeID
	nearestDist := math.MaxFloat64

	for id, nodePoint := range g.Nodes {
		dist := pointDistance(point, nodePoint)
		if dist < nearestDist || (dist == nearestDist && id < nearestID) {
			nearestDist = dist
			nearestID = id
		}
	}

	return nearestID, nearestDist, true
}

// Merge copies other into g, remapping node ids so graphs built from
// separate tiles join at shared points.
func (g *WalkGraph) Merge(other *WalkGraph) {
	idMapping := make(map[NodeID]NodeID, len(other.Nodes))
	for otherID, point := range other.Nodes {
		idMapping[otherID] = g.getOrCreateNode(point)
	}

	for from, edges := range other.Edges {
		mappedFrom := idMapping[from]
		for _, edge := range edges {
			g.Edges[mappedFrom] = append(g.Edges[mappedFrom], Edge{
				To:       idMapping[edge.To],
				Distance: edge.Distance,
				Cost:     edge.Cost,
			})
		}
	}
}

func pointDistance(a, b orb.Point) float64 {
	return geo.Haversine(entity.CoordinateFromPoint(a), entity.CoordinateFromPoint(b))
}
