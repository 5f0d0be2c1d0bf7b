package pmtiles

import (
	"container/heap"
	"slices"
)

// PathResult is the outcome of a shortest path search.
type PathResult struct {
	Nodes       []NodeID
	Distance    float64 // meters along the nodes
	IsReachable bool
}

// Pathfinder runs Dijkstra over a WalkGraph.
type Pathfinder struct {
	graph *WalkGraph
}

func NewPathfinder(graph *WalkGraph) *Pathfinder {
	return &Pathfinder{graph: graph}
}

type dijkstraNode struct {
	id       NodeID
	cost     float64
	distance float64
	index    int
}

type priorityQueue []*dijkstraNode

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].cost < pq[j].cost
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *priorityQueue) Push(x any) {
	n := len(*pq)
	node := x.(*dijkstraNode)
	node.index = n
	*pq = append(*pq, node)
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	node := old[n-1]
	old[n-1] = nil
	node.index = -1
	*pq = old[0 : n-1]

	return node
}

// ShortestPath finds the cheapest walk from source to target and the nodes
// along it, source first.
func (pf *Pathfinder) ShortestPath(sourceID, targetID NodeID) PathResult {
	if _, exists := pf.graph.Nodes[sourceID]; !exists {
		return PathResult{}
	}
	if _, exists := pf.graph.Nodes[targetID]; !exists {
		return PathResult{}
	}
	if sourceID == targetID {
		return PathResult{Nodes: []NodeID{sourceID}, IsReachable: true}
	}

	costs := map[NodeID]float64{sourceID: 0}
	previous := make(map[NodeID]NodeID)
	visited := make(map[NodeID]bool)

	pq := make(priorityQueue, 0)
	heap.Init(&pq)
	heap.Push(&pq, &dijkstraNode{id: sourceID})

	for pq.Len() > 0 {
		current := heap.Pop(&pq).(*dijkstraNode)

		if visited[current.id] {
			continue
		}
		visited[current.id] = true

		if current.id == targetID {
			return PathResult{
				Nodes:       buildNodePath(previous, sourceID, targetID),
				Distance:    current.distance,
				IsReachable: true,
			}
		}

		for _, edge := range pf.graph.Edges[current.id] {
			if visited[edge.To] {
				continue
			}

			newCost := current.cost + edge.Cost
			if known, ok := costs[edge.To]; ok && newCost >= known {
				continue
			}
			costs[edge.To] = newCost
			previous[edge.To] = current.id
			heap.Push(&pq, &dijkstraNode{
				id:       edge.To,
				cost:     newCost,
				distance: current.distance + edge.Distance,
			})
		}
	}

	return PathResult{}
}

func buildNodePath(previous map[NodeID]NodeID, sourceID, targetID NodeID) []NodeID {
	nodes := []NodeID{targetID}
	for id := targetID; id != sourceID; {
		id = previous[id]
		nodes = append(nodes, id)
	}
	slices.Reverse(nodes)

	return nodes
}
