// Copyright (c) 2024 SIROS Foundation
// SPDX-License-Identifier: BSD-2-Clause

/*
Package xmltree provides a small, explicit XML element tree.

An Element holds a tag, attributes in insertion order, child elements in
insertion order and an optional text value. Trees are built and owned by the
caller; serialization walks the tree directly and does not depend on any
DOM implementation.

# Building

	env := xmltree.NewElement("soap:Envelope")
	env.SetAttr("xmlns:soap", "http://www.w3.org/2003/05/soap-envelope")
	body := env.CreateElement("soap:Body")
	body.CreateElement("NoOpRequest").SetAttr("xmlns", "urn:zimbraMail")

# Serializing

	var buf bytes.Buffer
	_, err := xmltree.WriteDocument(&buf, env)

WriteDocument prefixes the XML declaration. Element.String and
Element.WriteTo emit the element alone. Elements without children and text
are written in the self-closing form.
*/
package xmltree
