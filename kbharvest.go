// Package kbharvest harvests book chapters and blog posts into a single
// normalized knowledge-base JSON document.
//
// This package contains domain types, interfaces and the chapter
// segmentation algorithm following Ben Johnson's Standard Package Layout.
// Implementations live in subdirectories named after their primary
// dependency (e.g., pdf/, goquery/, sqlite/).
package kbharvest
