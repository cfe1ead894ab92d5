// Package mapsync extracts business listings from saved Google Maps pages
// and synchronizes them as rows of a workspace table.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, notion/, sqlite/).
package mapsync
