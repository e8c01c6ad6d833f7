// Package luagfx exposes vertex arrays and debug lines to Lua scripts.
//
// Script interface:
//
//	-- Once per model. mode is 'triangle strip', 'triangles', 'points' or
//	-- 'lines'; color is {r, g, b}; point_size only matters for 'points'.
//	v_array = VertexArray:new({x1, y1, z1, x2, y2, z2, ...}, mode, [color], [point_size])
//
//	-- Every frame.
//	v_array:draw([mode])
//
//	-- Cheaper when many arrays share the program and transforms.
//	VertexArray:setup_drawing()
//	for _, v in pairs(v_arrays) do
//	  v:draw_without_setup([mode])
//	end
//
//	lines.set_scale(0.7)
//	lines.add({x, y, z}, {x, y, z})
//	lines.draw_all()
//	lines.reset()
//
// Malformed arguments raise a regular Lua error naming the argument. GPU and
// precondition failures raise an error value wrapping the Go error; Unwrap
// recovers it from the error returned by the protected call.
package luagfx
