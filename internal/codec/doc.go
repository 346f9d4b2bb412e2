// Package codec converts content models to and from their JSON payload.
//
// The payload layout is
//
//	{
//	  "blocks": [
//	    {"key": "a1b2c3d4", "type": "header-one", "text": "Title",
//	     "styleRanges": [{"style": "BOLD", "start": 0, "end": 5}]}
//	  ],
//	  "entityMap": {}
//	}
//
// Offsets count Unicode code points. The entity map is never interpreted;
// it is written and read back byte for byte.
//
// Deserialize checks the whole payload before building anything. A field
// that is missing or has the wrong JSON type is a *FormatError naming its
// path; nothing is silently defaulted except a missing block key, which is
// generated.
package codec
