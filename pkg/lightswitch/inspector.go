package lightswitch

import (
	"fmt"

	"github.com/mike-scofield/sdk-nrf/pkg/binding"
	"github.com/pion/logging"
)

// Inspector reads the binding table for diagnostics and group gating.
type Inspector struct {
	table binding.EntrySource
	log   logging.LeveledLogger
}

// NewInspector creates an Inspector over table.
func NewInspector(table binding.EntrySource, loggerFactory logging.LoggerFactory) *Inspector {
	return &Inspector{
		table: table,
		log:   newLogger(loggerFactory, "lightswitch"),
	}
}

// HasAnyGroupBinding reports whether any entry is a multicast binding.
func (i *Inspector) HasAnyGroupBinding() bool {
	for _, e := range i.table.Entries() {
		if e.Type == binding.TypeMulticast {
			return true
		}
	}
	return false
}

// DumpTable describes each entry on one line, in table order.
func (i *Inspector) DumpTable() []string {
	entries := i.table.Entries()
	lines := make([]string, 0, len(entries))
	for idx, e := range entries {
		lines = append(lines, describeEntry(idx, e))
	}
	return lines
}

// PrintTable logs the table size followed by DumpTable.
func (i *Inspector) PrintTable() {
	lines := i.DumpTable()
	i.log.Infof("Binding Table size: [%d]:", len(lines))
	for _, line := range lines {
		i.log.Info(line)
	}
}

func describeEntry(idx int, e binding.Entry) string {
	switch e.Type {
	case binding.TypeUnicast:
		cluster := "any"
		if e.ClusterID != nil {
			cluster = fmt.Sprintf("%d", uint32(*e.ClusterID))
		}
		return fmt.Sprintf("[%d] %s: Fabric: %d LocalEndpoint: %d ClusterId: %s RemoteEndpointId: %d NodeId: %d",
			idx, e.Type, e.FabricIndex, e.Local, cluster, e.Remote, uint64(e.NodeID))
	case binding.TypeMulticast:
		return fmt.Sprintf("[%d] %s: Fabric: %d LocalEndpoint: %d RemoteEndpointId: %d GroupId: %d",
			idx, e.Type, e.FabricIndex, e.Local, e.Remote, e.GroupID)
	default:
		return fmt.Sprintf("[%d] %s", idx, e.Type)
	}
}
