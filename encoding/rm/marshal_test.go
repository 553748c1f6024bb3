package rm

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPage() Rm {
	points := make([]Point, 0)
	for i := 0; i < 200; i++ {
		c := float32(i)

		p := Point{
			X:         100,
			Y:         c,
			Speed:     2.,
			Direction: 3.,
			Width:     2.0,
			Pressure:  .3,
		}
		points = append(points, p)
	}

	return Rm{
		Version: V5,
		Layers: []Layer{
			{
				Lines: []Line{
					{
						BrushSize:  Medium,
						BrushColor: Black,
						BrushType:  FinelinerV5,
						Points:     points,
					},
					{
						BrushSize:  Large,
						BrushColor: Grey,
						BrushType:  BallPointV5,
						Points: []Point{
							{X: 100, Y: 100, Speed: 2., Direction: 1., Width: 3.0, Pressure: .3},
							{X: 1000, Y: 1000, Speed: 2., Direction: 1., Width: 3.0, Pressure: .3},
						},
					},
					{
						BrushSize: Small,
						BrushType: FinelinerV5,
					},
				},
			},
			{},
		},
	}
}

func TestMarshalBinary(t *testing.T) {
	page := testPage()

	data, err := page.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, HeaderV5, string(data[:HeaderLen]))

	var decoded Rm
	require.NoError(t, decoded.UnmarshalBinary(data))
	assert.Equal(t, V5, decoded.Version)
	require.Len(t, decoded.Layers, 2)
	require.Len(t, decoded.Layers[0].Lines, 3)
	assert.Equal(t, page.Layers[0].Lines[0], decoded.Layers[0].Lines[0])
	assert.Equal(t, page.Layers[0].Lines[1], decoded.Layers[0].Lines[1])
	assert.Empty(t, decoded.Layers[0].Lines[2].Points)
	assert.Empty(t, decoded.Layers[1].Lines)
}

func TestUnmarshalV3(t *testing.T) {
	var b bytes.Buffer
	b.WriteString(HeaderV3)
	binary.Write(&b, binary.LittleEndian, uint32(1)) // layers
	binary.Write(&b, binary.LittleEndian, uint32(1)) // lines
	binary.Write(&b, binary.LittleEndian, lineHeader{BrushType: Fineliner, BrushSize: Medium})
	binary.Write(&b, binary.LittleEndian, uint32(1)) // points
	binary.Write(&b, binary.LittleEndian, Point{X: 10, Y: 20, Pressure: .5})

	var page Rm
	require.NoError(t, page.UnmarshalBinary(b.Bytes()))
	assert.Equal(t, V3, page.Version)
	require.Len(t, page.Layers[0].Lines, 1)
	assert.Equal(t, Fineliner, page.Layers[0].Lines[0].BrushType)
	assert.Equal(t, []Point{{X: 10, Y: 20, Pressure: .5}}, page.Layers[0].Lines[0].Points)
}

func TestUnmarshalRejectsV6(t *testing.T) {
	var page Rm
	err := page.UnmarshalBinary([]byte(HeaderV6 + "\x00\x00"))
	assert.Equal(t, ErrUnsupportedVersion, err)
}

func TestUnmarshalTruncated(t *testing.T) {
	page := testPage()
	data, err := page.MarshalBinary()
	require.NoError(t, err)

	var decoded Rm
	assert.Error(t, decoded.UnmarshalBinary(data[:len(data)/2]))
	assert.Error(t, decoded.UnmarshalBinary([]byte("not a page")))
}
