// Package gpucore defines the backend-neutral device surface the compositor
// renders through.
//
// Resources are referred to by opaque IDs. Each [Device] implementation
// keeps the mapping between IDs and its own backend objects:
//
//	               +-----------------+
//	               |     render      |
//	               | (batch, slots)  |
//	               +--------+--------+
//	                        |
//	         +--------------+--------------+
//	         |                             |
//	+--------v--------+          +--------v--------+
//	| backend/native  |          |    recording    |
//	|  (hal.Device)   |          |  (in memory)    |
//	+-----------------+          +-----------------+
//
// The compositor only creates buffers and textures and records draws into a
// [PassEncoder]. Pipelines are fixed per backend and selected by
// [PipelineKind].
package gpucore
