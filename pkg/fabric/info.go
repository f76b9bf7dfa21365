package fabric

import (
	"errors"
	"fmt"
)

// Info errors.
var (
	// ErrInvalidFabricIndex is returned for index 0 or 255.
	ErrInvalidFabricIndex = errors.New("fabric: invalid fabric index")
	// ErrInvalidNodeID is returned when the local node ID is not operational.
	ErrInvalidNodeID = errors.New("fabric: invalid operational node ID")
	// ErrInvalidLabel is returned when a label exceeds MaxLabelSize.
	ErrInvalidLabel = errors.New("fabric: label too long")
)

// Info is the identity of this node on one fabric.
type Info struct {
	FabricIndex FabricIndex
	FabricID    FabricID
	NodeID      NodeID // local node ID on this fabric
	VendorID    VendorID
	Label       string
}

// Validate checks the fabric entry for errors.
func (f *Info) Validate() error {
	if !f.FabricIndex.IsValid() {
		return ErrInvalidFabricIndex
	}
	if !f.NodeID.IsOperational() {
		return ErrInvalidNodeID
	}
	if len(f.Label) > MaxLabelSize {
		return ErrInvalidLabel
	}
	return nil
}

// SetLabel updates the fabric label.
func (f *Info) SetLabel(label string) error {
	if len(label) > MaxLabelSize {
		return ErrInvalidLabel
	}
	f.Label = label
	return nil
}

// Clone returns a copy of the entry.
func (f *Info) Clone() *Info {
	c := *f
	return &c
}

// String returns a summary of the fabric entry.
func (f *Info) String() string {
	return fmt.Sprintf("Fabric{Index=%d, ID=0x%016X, Node=0x%016X, Label=%q}",
		f.FabricIndex, uint64(f.FabricID), uint64(f.NodeID), f.Label)
}
