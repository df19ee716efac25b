// Package schema compiles a small YAML schema language into typeguard
// descriptors.
//
// A schema is a YAML node:
//
//	name: string               # built-in names: number string boolean null any
//	age: number?               # object array symbol function integer; "?" = nullable
//	tags: {$arrayOf: string}
//	pos: [number, number]      # sequences are tuples
//	kind: {$literal: user}
//	id: {$oneOf: [string, integer]}
//	scale: {$integer: {min: 0, max: 10}}
//	nick?: string              # "?" on a key makes the field nullable
//
// Mappings are records unless their single key is a directive ($oneOf,
// $arrayOf, $tupleOf, $nullable, $literal, $func, $integer). Non-string
// scalars are literals.
//
// A document may also name reusable types:
//
//	$defs:
//	  point: {x: number, y: number}
//	$type:
//	  from: point
//	  to: point
//
// Compilation goes through a typeguard.Registry, so a schema and the
// equivalent Go factory calls yield the same descriptors.
package schema
