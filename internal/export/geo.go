package export

import (
	"encoding/json"
	"io"

	"github.com/peterstace/simplefeatures/geom"
	"github.com/san-kum/efield/internal/field"
	"github.com/san-kum/efield/internal/render"
)

// pathToLineString converts a traced path to a geom.LineString. Paths with
// fewer than two vertices yield an empty line string.
func pathToLineString(p *field.Path) geom.LineString {
	pts := p.Polyline()
	if len(pts) < 2 {
		return geom.LineString{}
	}
	coords := make([]float64, 0, len(pts)*2)
	for _, v := range pts {
		coords = append(coords, v.X, v.Y)
	}
	return geom.NewLineString(geom.NewSequence(coords, geom.DimXY))
}

func chargePoint(c field.Charge) geom.Point {
	return geom.NewPoint(geom.Coordinates{XY: geom.XY{X: c.X, Y: c.Y}})
}

func arrowLines(p *field.Path, length float64) geom.MultiLineString {
	segs := p.ArrowSegments(length)
	lss := make([]geom.LineString, 0, len(segs))
	for _, s := range segs {
		seq := geom.NewSequence([]float64{s.From.X, s.From.Y, s.To.X, s.To.Y}, geom.DimXY)
		lss = append(lss, geom.NewLineString(seq))
	}
	return geom.NewMultiLineString(lss)
}

// FieldLines returns every drawable path of the frame as one
// MultiLineString, in charge order.
func FieldLines(f *render.Frame) geom.MultiLineString {
	var lss []geom.LineString
	for _, p := range f.Paths() {
		if ls := pathToLineString(p); !ls.IsEmpty() {
			lss = append(lss, ls)
		}
	}
	return geom.NewMultiLineString(lss)
}

// Charges returns the charge positions as a MultiPoint.
func Charges(f *render.Frame) geom.MultiPoint {
	pts := make([]geom.Point, len(f.Charges))
	for i, c := range f.Charges {
		pts[i] = chargePoint(c)
	}
	return geom.NewMultiPoint(pts)
}

// FrameToWKT renders the frame as a GEOMETRYCOLLECTION of the field lines
// and the charges.
func FrameToWKT(f *render.Frame) string {
	gc := geom.NewGeometryCollection([]geom.Geometry{
		FieldLines(f).AsGeometry(),
		Charges(f).AsGeometry(),
	})
	return gc.AsText()
}

// FeatureCollection describes the frame as GeoJSON features: one per
// charge, one per field line and one holding each line's arrow ticks.
func FeatureCollection(f *render.Frame) geom.GeoJSONFeatureCollection {
	var fc geom.GeoJSONFeatureCollection

	for i, c := range f.Charges {
		fc = append(fc, geom.GeoJSONFeature{
			Geometry: chargePoint(c).AsGeometry(),
			ID:       i,
			Properties: map[string]interface{}{
				"kind":   "charge",
				"charge": c.Magnitude,
			},
		})
	}

	for _, cl := range f.Lines {
		for j, p := range cl.Paths {
			ls := pathToLineString(p)
			if ls.IsEmpty() {
				continue
			}
			fc = append(fc, geom.GeoJSONFeature{
				Geometry: ls.AsGeometry(),
				Properties: map[string]interface{}{
					"kind":        "field_line",
					"charge":      cl.Index,
					"line":        j,
					"iterations":  p.Iterations,
					"termination": p.Termination.String(),
					"length":      p.Length(),
				},
			})
			if len(p.Arrows) > 0 {
				fc = append(fc, geom.GeoJSONFeature{
					Geometry: arrowLines(p, f.Params.ArrowLength).AsGeometry(),
					Properties: map[string]interface{}{
						"kind":   "arrows",
						"charge": cl.Index,
						"line":   j,
					},
				})
			}
		}
	}
	return fc
}

func WriteWKT(w io.Writer, f *render.Frame) error {
	_, err := io.WriteString(w, FrameToWKT(f)+"\n")
	return err
}

func WriteGeoJSON(w io.Writer, f *render.Frame) error {
	enc := json.NewEncoder(w)
	return enc.Encode(FeatureCollection(f))
}
