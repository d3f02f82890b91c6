package workflow

import (
	"sort"

	"office-records-backend/internal/model"
)

type RecordNode struct {
	ID             uint                    `json:"id"`
	UniqueNumber   string                  `json:"unique_number"`
	Subject        string                  `json:"subject"`
	Status         model.RecordStatus      `json:"status"`
	TrackingNumber string                  `json:"tracking_number"`
	NextActions    []Action                `json:"next_actions"`
	Forwards       []model.ForwardedRecord `json:"forwards"`
}

type FileNode struct {
	ID          uint           `json:"id"`
	FileNumber  string         `json:"file_number"`
	Name        string         `json:"name"`
	Type        model.FileType `json:"type"`
	RecordCount int            `json:"record_count"`
	Records     []RecordNode   `json:"records"`
}

// BuildTree groups flat rows into file -> record -> forward nodes. Rows whose
// parent is missing are dropped. Files keep the input order, records are
// ordered by id.
func BuildTree(files []model.File, records []model.Record, forwards []model.ForwardedRecord) []FileNode {
	forwardsByRecord := make(map[uint][]model.ForwardedRecord)
	for _, f := range forwards {
		forwardsByRecord[f.RecordID] = append(forwardsByRecord[f.RecordID], f)
	}

	recordsByFile := make(map[uint][]RecordNode)
	for _, r := range records {
		fw := forwardsByRecord[r.ID]
		if fw == nil {
			fw = []model.ForwardedRecord{}
		}
		recordsByFile[r.FileID] = append(recordsByFile[r.FileID], RecordNode{
			ID:             r.ID,
			UniqueNumber:   r.UniqueNumber,
			Subject:        r.Subject,
			Status:         r.Status,
			TrackingNumber: r.TrackingNumber,
			NextActions:    Allowed(r.Status),
			Forwards:       fw,
		})
	}

	tree := make([]FileNode, 0, len(files))
	for _, f := range files {
		nodes := recordsByFile[f.ID]
		if nodes == nil {
			nodes = []RecordNode{}
		}
		sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
		tree = append(tree, FileNode{
			ID:          f.ID,
			FileNumber:  f.FileNumber,
			Name:        f.Name,
			Type:        f.Type,
			RecordCount: len(nodes),
			Records:     nodes,
		})
	}
	return tree
}
