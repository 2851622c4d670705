// Package ocean polls a Coastwatch ERDDAP griddap-as-tabular endpoint
// for surface ocean current velocity and reshapes the flat
// {lat, lon, u, v} rows into a model.VectorField using the same
// grid-assembly routine (decode.AssembleGrid) the ionosphere and
// aurora collectors use, so every sample-reshaping provider shares one
// routine.
package ocean
