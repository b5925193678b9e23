package generate

// skeleton is the fixed project scaffold every generated app shares.
// Files are go-templates expanded with the app metadata; App.js gets
// the concatenated component fragments through .Components. Scaffold
// templates use [[ ]] delimiters so JSX braces pass through untouched.
var skeleton = map[string]string{
	"App.js": `// Generated by appcanvas on [[.GeneratedAt]].
// Do not edit: regenerate from the builder instead.
import React from 'react';
import { ScrollView, View } from 'react-native';

import { AnnouncementBar } from './src/components/AnnouncementBar';
import { Banner } from './src/components/Banner';
import { ButtonRow } from './src/components/ButtonRow';
import { Countdown } from './src/components/Countdown';
import { FeaturedCollection } from './src/components/FeaturedCollection';
import { ImageSlider } from './src/components/ImageSlider';
import { ProductGrid } from './src/components/ProductGrid';
import { TextBlock } from './src/components/TextBlock';
import { VideoEmbed } from './src/components/VideoEmbed';
import { useCatalog } from './src/catalog';
import { theme } from './src/theme';

export default function App() {
  const catalogItems = useCatalog([[.AppKeyJS]]);

  return (
    <ScrollView style={{ backgroundColor: theme.background }}>
[[.Components]]    </ScrollView>
  );
}
`,

	"package.json": `{
  "name": [[.AppSlugJS]],
  "version": "1.0.0",
  "main": "node_modules/expo/AppEntry.js",
  "scripts": {
    "start": "expo start",
    "android": "expo start --android",
    "ios": "expo start --ios"
  },
  "dependencies": {
    "expo": "~51.0.0",
    "react": "18.2.0",
    "react-native": "0.74.0"
  },
  "private": true
}
`,

	"app.json": `{
  "expo": {
    "name": [[.AppNameJS]],
    "slug": [[.AppSlugJS]],
    "version": "1.0.0",
    "orientation": "portrait",
    "userInterfaceStyle": "light",
    "assetBundlePatterns": ["**/*"]
  }
}
`,

	"babel.config.js": `module.exports = function (api) {
  api.cache(true);
  return {
    presets: ['babel-preset-expo'],
  };
};
`,

	"src/theme.js": `export const theme = {
  background: '#FFFFFF',
  text: '#111111',
  accent: '#2563EB',
  spacing: 16,
};
`,

	"src/catalog.js": `import { useEffect, useState } from 'react';

// Generated apps ship with a static catalog snapshot; a storefront
// build replaces this hook with a live data source.
export function useCatalog(appKey) {
  const [items] = useState([]);
  useEffect(() => {}, [appKey]);
  return items;
}
`,
}
