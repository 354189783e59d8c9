package catalog

import "testing"

func TestNewInteractionCacheDeterministic(t *testing.T) {
	types := []ItemType{
		Simple{Lambda: 1.0, Radius: 2, Energy: 0.5},
		Simple{Lambda: 0.3, Radius: 1, Energy: 1.0},
	}

	c1 := NewInteractionCache(types, 8)
	c2 := NewInteractionCache(types, 8)

	if c1.MaxRadius() != c2.MaxRadius() {
		t.Fatalf("MaxRadius differs: %d vs %d", c1.MaxRadius(), c2.MaxRadius())
	}

	for t1 := uint32(0); t1 < 2; t1++ {
		for t2 := uint32(0); t2 < 2; t2++ {
			for dx := int64(-2); dx <= 2; dx++ {
				for dy := int64(-2); dy <= 2; dy++ {
					e1 := c1.Energy(t1, t2, dx, dy)
					e2 := c2.Energy(t1, t2, dx, dy)
					if e1 != e2 {
						t.Fatalf("Energy(%d,%d,%d,%d) differs: %f vs %f", t1, t2, dx, dy, e1, e2)
					}
				}
			}
		}
	}
}

func TestMaxRadiusClampedToHalfN(t *testing.T) {
	types := []ItemType{Simple{Lambda: 1, Radius: 100, Energy: 1}}
	c := NewInteractionCache(types, 8)
	if c.MaxRadius() != 4 {
		t.Errorf("MaxRadius() = %d; want 4 (n/2 clamp)", c.MaxRadius())
	}
}
