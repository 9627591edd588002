// sample.go: Sample configuration document.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package configcrypt

// SampleConfig returns an example dialog configuration document, useful to
// exercise the encrypt/decrypt round-trip end to end.
func SampleConfig() string {
	return `<config>
    <version>1.0</version>
    <enabled>on</enabled>
    <title>System update</title>
    <titleColor>#FF5722</titleColor>
    <message>An important update is available. Tap "Update now" to install it.</message>
    <messageColor>#212121</messageColor>
    <positiveButton>show</positiveButton>
    <positiveText>Update now</positiveText>
    <positiveColor>#2196F3</positiveColor>
    <positiveLink>Q@https://example.com/agree</positiveLink>
    <negativeButton>show</negativeButton>
    <negativeText>Later</negativeText>
    <negativeColor>#757575</negativeColor>
    <negativeLink>close</negativeLink>
    <neutralButton>hide</neutralButton>
    <neutralText>Details</neutralText>
    <neutralColor>#4CAF50</neutralColor>
    <neutralLink>Q@https://example.com/later</neutralLink>
    <cancelOnTouchOutside>allow</cancelOnTouchOutside>
</config>`
}
