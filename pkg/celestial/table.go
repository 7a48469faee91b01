package celestial

// DefaultSystem returns the built-in solar system table. Sizes and
// distances are picked to look right together, not to scale.
func DefaultSystem() SystemDescriptor {
	return SystemDescriptor{
		Name: "Sol",
		Star: BodyDescriptor{
			Name:   "Sun",
			Radius: 5,
			Speed:  1,
		},
		Bodies: []BodyDescriptor{
			{
				Name:     "Mercury",
				Radius:   0.4,
				Distance: 10,
				Speed:    4.7,
			},
			{
				Name:     "Venus",
				Radius:   0.9,
				Distance: 15,
				Speed:    3.5,
			},
			{
				Name:     "Earth",
				Radius:   1,
				Distance: 20,
				Speed:    3,
				Satellites: []BodyDescriptor{
					{Name: "Moon", Radius: 0.27, Distance: 3, Speed: 6},
				},
			},
			{
				Name:     "Mars",
				Radius:   0.5,
				Distance: 26,
				Speed:    2.4,
				Satellites: []BodyDescriptor{
					{Name: "Phobos", Radius: 0.1, Distance: 1.5, Speed: 8},
					{Name: "Deimos", Radius: 0.08, Distance: 2.4, Speed: 5},
				},
			},
			{
				Name:     "Jupiter",
				Radius:   2.8,
				Distance: 34,
				Speed:    1.3,
			},
			{
				Name:     "Saturn",
				Radius:   2.4,
				Distance: 42,
				Speed:    1,
				Ring:     &RingSpec{InnerRadius: 3, OuterRadius: 5.2},
			},
			{
				Name:     "Uranus",
				Radius:   1.6,
				Distance: 50,
				Speed:    0.7,
				Ring:     &RingSpec{InnerRadius: 2, OuterRadius: 2.6},
			},
			{
				Name:     "Neptune",
				Radius:   1.5,
				Distance: 58,
				Speed:    0.5,
			},
		},
	}
}
