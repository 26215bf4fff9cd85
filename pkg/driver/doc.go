// Package driver provides the GraphStore abstraction over graph databases
// and its Neo4j implementation.
//
// Provider-native record shapes (dbtype.Node, dbtype.Path, flat maps) are
// normalised once, at this boundary, into flat property maps. Consumers never
// see driver-native values.
//
// Read queries swallow non-fatal store errors and return an empty record set;
// only startup connectivity checks and write statements surface errors.
package driver
