/*
Package config manages configuration parsing and defaults for do2to3.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +-----------+-----------+
	      |                       |
	+-----+-----+           +----+----+
	|   YAML    |           |   HCL   |
	| Parser    |           | Parser  |
	+-----------+           +---------+

🎯 Purpose:
- Loads the conversion setup from .do2to3.yaml or .do2to3.hcl
- Falls back to the built-in Biopython defaults when no file exists
- Provides type-safe config access to the other packages

🔄 Flow:
1. Load reads the file and picks a registered parser by extension
2. The parser decodes format-specific syntax into Config
3. Unset fields are filled from Default()

🤝 Interfaces:
- Parser: format-specific parsing, registered via Register
*/
package config
