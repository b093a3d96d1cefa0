package land

import "github.com/litescript/ls-globe/internal/globe"

// embedded is a coarse outline of the major landmasses, used when the
// configured source cannot be read.
var embedded = []globe.Ring{
	{{-180, -60}, {-120, -75}, {-60, -55}, {-40, -20}, {-80, 30}, {-125, 50}, {-70, 50}, {-55, 50}, {-180, 70}, {180, 70}, {180, -60}, {-180, -60}},
	{{-10, 35}, {5, 51}, {30, 46}, {25, 32}, {0, 36}, {-18, 15}, {-12, -35}, {35, -5}, {15, 50}, {-10, 35}},
	{{25, 42}, {70, 42}, {100, 22}, {130, 5}, {145, 50}, {180, 65}, {180, 75}, {-180, 75}, {-180, 70}, {-65, 55}, {-55, 50}, {-70, 50}, {-30, 70}, {25, 72}, {25, 42}},
	{{113, -26}, {145, -28}, {154, -38}, {130, -32}, {113, -26}},
	{{-45, 60}, {-30, 75}, {-30, 83}, {-45, 75}, {-45, 60}},
	{{-10, 50}, {0, 59}, {0, 52}, {-10, 50}},
	{{130, 32}, {142, 45}, {140, 35}, {130, 32}},
	{{43, -12}, {50, -26}, {43, -12}},
	{{166, -34}, {178, -47}, {166, -47}, {166, -34}},
	{{95, -6}, {141, -2}, {140, -20}, {95, -6}},
	{{-24, 63}, {-15, 66}, {-24, 63}},
}

// Embedded returns a copy of the built-in fallback rings.
func Embedded() []globe.Ring {
	out := make([]globe.Ring, len(embedded))
	for i, r := range embedded {
		out[i] = append(globe.Ring(nil), r...)
	}
	return out
}
